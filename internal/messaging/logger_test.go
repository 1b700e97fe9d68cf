package messaging_test

import (
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/isacvale/fcc-timestamp/internal/messaging"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	t.Run("forwards levels and fields", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := messaging.NewZapLogger(zap.New(core))

		logger.Info("subscribed", watermill.LogFields{"topic": "url.created"})
		logger.Error("publish failed", errors.New("boom"), nil)
		logger.Trace("tick", nil)

		entries := logs.All()
		assert.Len(t, entries, 3)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, "url.created", entries[0].ContextMap()["topic"])
		assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
		assert.Equal(t, "boom", entries[1].ContextMap()["error"])
		assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
	})

	t.Run("with carries fields to children", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := messaging.NewZapLogger(zap.New(core)).With(watermill.LogFields{"consumer_group": "analytics"})

		logger.Debug("message received", nil)

		entries := logs.All()
		assert.Len(t, entries, 1)
		assert.Equal(t, "analytics", entries[0].ContextMap()["consumer_group"])
	})
}

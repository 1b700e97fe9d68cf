package shortener

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

// CodeLength is the length of generated short codes.
const CodeLength = 8

// CodeGenerator generates short codes.
type CodeGenerator func() string

// Generator names accepted by NewCodeGenerator.
const (
	GeneratorUUID   = "uuid"
	GeneratorNanoID = "nanoid"
)

// UUIDGenerator slices the leading characters off a random v4 UUID.
// Lengths above 32 are clamped to the number of hex digits available.
func UUIDGenerator(length int) CodeGenerator {
	return func() string {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")
		if length > len(id) {
			return id
		}

		return id[:length]
	}
}

// NewCodeGenerator builds the named generator.
func NewCodeGenerator(name string, length int) (CodeGenerator, error) {
	if length <= 0 {
		length = CodeLength
	}

	switch name {
	case "", GeneratorUUID:
		return UUIDGenerator(length), nil
	case GeneratorNanoID:
		gen, err := nanoid.Standard(length)
		if err != nil {
			return nil, fmt.Errorf("nanoid generator: %w", err)
		}

		return gen, nil
	default:
		return nil, fmt.Errorf("unknown code generator %q", name)
	}
}

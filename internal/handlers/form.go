package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bodyValues flattens a urlencoded or JSON object body into url.Values so
// form posts and API clients share one code path.
func bodyValues(contentType string, raw []byte) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)

	if mediaType != "application/json" {
		return url.ParseQuery(string(raw))
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode json body: %w", err)
	}

	values := make(url.Values, len(fields))

	for key, value := range fields {
		switch v := value.(type) {
		case nil:
		case string:
			values.Set(key, v)
		case float64:
			values.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			values.Set(key, fmt.Sprint(v))
		}
	}

	return values, nil
}

// validationMessage turns validator errors into a short client-facing message.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}

	first := errs[0]

	return fmt.Sprintf("%s failed on %s", first.Field(), first.Tag())
}

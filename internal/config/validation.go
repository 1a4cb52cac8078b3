package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a validation failure for one config key.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every failing key.
type ValidationErrors []*FieldError

func (ve ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString("config: invalid configuration")
	for _, e := range ve {
		b.WriteString("\n- ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// OrNil returns nil when there are no errors.
func (ve ValidationErrors) OrNil() error {
	if len(ve) == 0 {
		return nil
	}
	return ve
}

// Validate checks the struct tags and reports failures by config key
// (e.g. "map.zoom").
func (c *Config) Validate() error {
	err := structValidator().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config: validate: %w", err)
	}

	var out ValidationErrors
	for _, fe := range fieldErrs {
		out = append(out, &FieldError{
			Field:   configKey(fe.Namespace()),
			Message: describe(fe),
		})
	}
	return out.OrNil()
}

// configKey drops the root struct name: "Config.map.zoom" -> "map.zoom".
func configKey(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

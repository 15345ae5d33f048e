package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError carries field-level messages so the error handler can
// answer 400 instead of 500.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, "; ")
}

// ValidateRequest checks the struct's validate tags.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		fields = append(fields, fmt.Sprintf("field %s failed on %s", fieldErr.Field(), fieldErr.Tag()))
	}
	return &ValidationError{Fields: fields}
}

package utils

import (
	"errors"
	"fmt"
	"strings"
)

// ConvertPanicValueToError returns v if it is an error, otherwise it wraps its representation in an error.
func ConvertPanicValueToError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %#v", v)
}

// CombineErrors combines the non-nil errors into a single error with a multiline message,
// nil is returned if there are no such errors.
func CombineErrors(errs ...error) error {
	var messages []string

	for _, err := range errs {
		if err != nil {
			messages = append(messages, err.Error())
		}
	}

	if len(messages) == 0 {
		return nil
	}
	return errors.New(strings.Join(messages, "\n"))
}

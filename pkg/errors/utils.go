package errors

import (
	"fmt"
	"strings"
)

// Helper to check if an error is of our Error type
func IsMallardError(err error) bool {
	_, ok := err.(*Error)
	return ok
}

// Helper to extract context from our errors
func GetContext(err error) map[string]string {
	if mallardErr, ok := err.(*Error); ok {
		return mallardErr.Context
	}
	return nil
}

// Helper to get error code
func GetCode(err error) string {
	if mallardErr, ok := err.(*Error); ok {
		return mallardErr.Code.String()
	}
	return ""
}

// HasCode reports whether err is an *Error carrying the given code.
func HasCode(err error, code Code) bool {
	if mallardErr, ok := err.(*Error); ok {
		return mallardErr.Code.Equals(code)
	}
	return false
}

// Helper to format error for logging
func FormatError(err error) string {
	if mallardErr, ok := err.(*Error); ok {
		var parts []string
		parts = append(parts, fmt.Sprintf("Code: %s", mallardErr.Code))
		parts = append(parts, fmt.Sprintf("Message: %s", mallardErr.Message))

		if len(mallardErr.Context) > 0 {
			parts = append(parts, "Context:")
			for k, v := range mallardErr.Context {
				parts = append(parts, fmt.Sprintf("  %s: %v", k, v))
			}
		}

		if mallardErr.Cause != nil {
			parts = append(parts, fmt.Sprintf("Cause: %v", mallardErr.Cause))
		}

		return strings.Join(parts, "\n")
	}
	return err.Error()
}

// AsError converts any error to the internal *Error format. Existing
// *Error values pass through; anything else is wrapped under
// CommonInternal so downstream code always sees a coded error.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	if internalErr, ok := err.(*Error); ok {
		return internalErr
	}

	return New(CommonInternal, err.Error(), err)
}

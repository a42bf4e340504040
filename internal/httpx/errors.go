package httpx

import "fmt"

// MalformedParamError reports a path or query parameter that failed to parse,
// keeping the offending value for the envelope.
type MalformedParamError struct {
	Name  string
	Value string
}

func (e *MalformedParamError) Error() string {
	return fmt.Sprintf("Invalid parameter: %s", e.Name)
}

// MissingParamError reports a required parameter that was absent.
type MissingParamError struct {
	Name string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("Missing parameter: %s", e.Name)
}

// ValidationFailedError carries one message per offending body field.
type ValidationFailedError struct {
	Fields map[string]string
}

func (e *ValidationFailedError) Error() string {
	return "Validation failed"
}

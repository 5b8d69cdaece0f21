package extract

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse indicates the model returned no usable text at all,
// as opposed to text that failed to parse.
var ErrEmptyResponse = errors.New("model returned empty response")

// MalformedResponseError wraps a JSON parse failure of the model output.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("model returned malformed JSON: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SchemaError indicates the parsed output is valid JSON but violates the
// required announcement shape.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("announcement schema violation: %s", e.Reason)
}

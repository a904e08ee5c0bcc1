package deploy

import (
	"errors"
	"fmt"
)

// Kind labels which pipeline step failed. The values appear verbatim in
// error responses.
type Kind string

const (
	KindValidation    Kind = "ValidationError"
	KindAuthorization Kind = "AuthorizationError"
	KindGeneration    Kind = "GenerationError"
	KindPublication   Kind = "PublicationError"
	KindDeployment    Kind = "DeploymentError"
)

// Error wraps a step failure with its taxonomy kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// KindOf extracts the taxonomy kind from an error chain, or "" when the
// error did not come from the pipeline.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

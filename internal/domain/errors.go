package domain

import "fmt"

// UnrecognizedIntentError is returned for intents the skill does not handle.
type UnrecognizedIntentError struct {
	Intent string
}

func (e *UnrecognizedIntentError) Error() string {
	if e.Intent == "" {
		return "invalid intent: request carries no intent"
	}
	return fmt.Sprintf("invalid intent: %s", e.Intent)
}

// UnsupportedRequestError is returned for request types outside the known set.
type UnsupportedRequestError struct {
	Type string
}

func (e *UnsupportedRequestError) Error() string {
	return fmt.Sprintf("unsupported request type: %q", e.Type)
}

// PanicError carries a value recovered from a panic during an invocation.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic during invocation: %v", e.Value)
}

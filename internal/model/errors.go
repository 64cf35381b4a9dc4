package model

import "fmt"

// ValidationError reports bad or missing client input. Handlers translate it
// to a 400 response carrying Message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamDomainError is raised when an upstream capability explicitly
// signals a semantic problem (e.g. Etherscan rejecting a timestamp). The
// upstream's own message is carried verbatim.
type UpstreamDomainError struct {
	Capability string
	Message    string
}

func (e *UpstreamDomainError) Error() string {
	return e.Message
}

// UpstreamTransportError wraps network failures and malformed upstream
// responses, prefixed with the failing capability.
type UpstreamTransportError struct {
	Capability string
	Err        error
}

func (e *UpstreamTransportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Capability, e.Err.Error())
}

func (e *UpstreamTransportError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a failed store operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

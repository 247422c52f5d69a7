package remote

import "fmt"

// CallError wraps any transport or protocol-level failure from a Client
// implementation. The vote coordinator rolls back optimistic state when
// it sees one after an attempted call.
type CallError struct {
	Op  string
	Err error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("remote call %s failed: %v", e.Op, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// WrapCall wraps err as a CallError unless it is nil.
func WrapCall(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CallError{Op: op, Err: err}
}

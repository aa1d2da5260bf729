// Package errors carries the structured errors ntxmon shows to operators.
//
// Every error names the subsystem that produced it, says what went wrong in
// one line and, where there is one, what to change to fix it.
package errors

import (
	"errors"
	"strings"
)

// Subsystem codes. A code tells the caller which part of the pipeline
// failed without parsing the message.
const (
	ErrConfig = "CONFIG" // configuration file or flags
	ErrRPC    = "RPC"    // daemon JSON-RPC call
	ErrWallet = "WALLET" // wallet file size lookup
	ErrRender = "RENDER" // table construction
	ErrInput  = "INPUT"  // operator input or malformed daemon data
	ErrSSH    = "SSH"    // tunnel to a remote daemon host
)

// Error is a failure with a subsystem code. The printed form is
//
//	✗ <message>
//
//	  <cause>
//
//	  <suggestion>
//
// with the cause and suggestion blocks omitted when empty.
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New returns an error with no underlying cause.
func New(code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion}
}

// WrapWithCode attaches code, message and suggestion to err.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion, Cause: err}
}

func (e *Error) Error() string {
	blocks := []string{"✗ " + e.Message}
	if e.Cause != nil {
		blocks = append(blocks, "  "+e.Cause.Error())
	}
	if e.Suggestion != "" {
		blocks = append(blocks, "  "+e.Suggestion)
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// Short is the one-line form used in log lines and table footers.
func (e *Error) Short() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode reports whether err, or anything it wraps, is an *Error with code.
func IsCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

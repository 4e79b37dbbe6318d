package domain

import (
	"errors"
	"fmt"
)

// Code tags every error returned across the engine boundary.
type Code string

const (
	CodeInvalidRequest         Code = "invalid_request"
	CodeSelfBooking            Code = "self_booking"
	CodeDuplicateActiveRequest Code = "duplicate_active_request"
	CodeInsufficientCapacity   Code = "insufficient_capacity"
	CodeNotFound               Code = "not_found"
	CodeUnauthorized           Code = "unauthorized"
	CodeAlreadyDecided         Code = "already_decided"
	CodeInvalidState           Code = "invalid_state"
	CodeCodeMismatch           Code = "code_mismatch"
	CodeInternal               Code = "internal_error"

	// codeInUse never leaves the engine; it makes the payment handshake draw
	// a new confirmation code.
	codeInUse Code = "code_in_use"
)

// Error is a tagged business or internal failure.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil && e.Code == CodeInternal:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same code, so the sentinels below work
// with errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidRequest         = &Error{Code: CodeInvalidRequest}
	ErrSelfBooking            = &Error{Code: CodeSelfBooking}
	ErrDuplicateActiveRequest = &Error{Code: CodeDuplicateActiveRequest}
	ErrInsufficientCapacity   = &Error{Code: CodeInsufficientCapacity}
	ErrNotFound               = &Error{Code: CodeNotFound}
	ErrUnauthorized           = &Error{Code: CodeUnauthorized}
	ErrAlreadyDecided         = &Error{Code: CodeAlreadyDecided}
	ErrInvalidState           = &Error{Code: CodeInvalidState}
	ErrCodeMismatch           = &Error{Code: CodeCodeMismatch}
	ErrInternal               = &Error{Code: CodeInternal}
	ErrCodeInUse              = &Error{Code: codeInUse}
)

func InvalidRequest(field, msg string) error {
	if field != "" {
		msg = fmt.Sprintf("%s: %s", field, msg)
	}
	return &Error{Code: CodeInvalidRequest, Msg: msg}
}

func NotFound(resource string) error {
	if resource == "" {
		resource = "resource"
	}
	return &Error{Code: CodeNotFound, Msg: resource + " not found"}
}

func Unauthorized(msg string) error {
	return &Error{Code: CodeUnauthorized, Msg: msg}
}

func InvalidState(msg string) error {
	return &Error{Code: CodeInvalidState, Msg: msg}
}

func New(code Code, msg string) error {
	return &Error{Code: code, Msg: msg}
}

// Internal wraps an unexpected storage or transport failure.
func Internal(msg string, err error) error {
	return &Error{Code: CodeInternal, Msg: msg, Err: err}
}

// Wrap keeps tagged errors as they are and turns anything else into an
// internal error.
func Wrap(msg string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return Internal(msg, err)
}

// CodeOf returns the tag of err, or CodeInternal for untagged errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation covers malformed input rejected before any side effect.
func IsValidation(err error) bool {
	switch CodeOf(err) {
	case CodeInvalidRequest, CodeSelfBooking:
		return true
	}
	return false
}

// IsConflict covers errors caused by the current state of a booking.
func IsConflict(err error) bool {
	switch CodeOf(err) {
	case CodeDuplicateActiveRequest, CodeAlreadyDecided, CodeInvalidState, CodeCodeMismatch:
		return true
	}
	return false
}

func IsCapacity(err error) bool {
	return errors.Is(err, ErrInsufficientCapacity)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsInternal(err error) bool {
	return err != nil && CodeOf(err) == CodeInternal
}

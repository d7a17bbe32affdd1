// Package apperr holds the domain error taxonomy shared by services and
// handlers. Services return these; the HTTP layer maps them to status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	KindNotFound         = "not_found"
	KindConflict         = "conflict"
	KindValidation       = "validation"
	KindInvalidSignature = "invalid_signature"
	KindGateway          = "gateway_error"
	KindUnauthorized     = "unauthorized"
)

type Error struct {
	Kind    string
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: what + " not found"}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

// InvalidSignature deliberately carries no detail about what failed, so a
// probing caller cannot learn whether the order reference was real.
func InvalidSignature() *Error {
	return &Error{Kind: KindInvalidSignature, Status: http.StatusBadRequest, Message: "invalid signature"}
}

func Gateway(err error) *Error {
	return &Error{Kind: KindGateway, Status: http.StatusBadGateway, Message: "payment gateway request failed", cause: err}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: msg}
}

// As unwraps err into an *Error if one is in the chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

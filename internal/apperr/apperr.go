// Package apperr classifies service failures so the HTTP boundary can map
// them to status codes without string matching.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindInsufficientStock
	KindPersistence
)

// Error carries a failure classification plus a human-readable message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func InsufficientStock(format string, args ...any) *Error {
	return &Error{Kind: KindInsufficientStock, Msg: fmt.Sprintf(format, args...)}
}

// Persistence wraps a store failure. The original error is kept for logging;
// callers see a stable message.
func Persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Msg: "persistence failure: " + err.Error(), Err: err}
}

// KindOf extracts the classification, defaulting to persistence for
// unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInsufficientStock:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// IsInsufficientStock reports whether err is a stock-bounds rejection.
func IsInsufficientStock(err error) bool {
	return KindOf(err) == KindInsufficientStock
}

// IsNotFound reports whether err is a missing-entity failure.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsValidation reports whether err is a bad-input failure.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

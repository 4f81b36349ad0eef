package usecase

import (
	"errors"
	"fmt"
)

// ErrCode classifies service failures so handlers can map them to HTTP
// statuses without matching on message text.
type ErrCode string

const (
	CodeNotFound    ErrCode = "NOT_FOUND"
	CodeForbidden   ErrCode = "FORBIDDEN"
	CodeConflict    ErrCode = "CONFLICT"
	CodeValidation  ErrCode = "VALIDATION"
	CodeUnavailable ErrCode = "UNAVAILABLE"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e *codedError) Error() string { return e.msg }
func (e *codedError) Code() ErrCode { return e.code }

func newErr(code ErrCode, format string, args ...any) error {
	return &codedError{code: code, msg: fmt.Sprintf(format, args...)}
}

// Code extracts the classification from an error chain; empty for
// unclassified (internal) errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// ConflictError is a date-overlap refusal. It carries the colliding record
// ids and the exact conflicting days so clients can render "unavailable
// because X" instead of a bare failure.
type ConflictError struct {
	Message          string   `json:"message"`
	BookingIDs       []string `json:"booking_ids,omitempty"`
	BlockIDs         []string `json:"block_ids,omitempty"`
	ConflictingDates []string `json:"conflicting_dates,omitempty"`
}

func (e *ConflictError) Error() string { return e.Message }
func (e *ConflictError) Code() ErrCode { return CodeConflict }

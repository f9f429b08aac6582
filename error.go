package brief

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	ENOACTIVETAB       = "no_active_tab"
	ENOTEXT            = "no_text"
	EUNKNOWNDEST       = "unknown_destination"
	EINPROGRESS        = "already_in_progress"
	EVIDEONOTLOADED    = "video_not_loaded"
	EPANELUNAVAILABLE  = "panel_unavailable"
	EVIDEOCHANGED      = "video_changed"
	ENOCONTENT         = "no_valid_content"
	EINPUTNOTFOUND     = "input_not_found"
	EDUPLICATE         = "duplicate_request"
	EHTTP              = "http_error"
	EMISSINGCREDENTIAL = "missing_credential"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code & message.
//
// Any non-application error (such as a disk error) should be reported as an
// EINTERNAL error and the human user should only see "Internal error" as the
// message. These low-level internal error details should only be logged and
// reported to the operator of the application (not the end user).
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("brief error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsBenign reports whether err is an expected, unsuccessful outcome rather
// than a failure: a duplicate delivery or an acquisition already running.
func IsBenign(err error) bool {
	switch ErrorCode(err) {
	case EDUPLICATE, EINPROGRESS:
		return true
	}
	return false
}

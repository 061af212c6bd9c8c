package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeNetwork      Code = "NETWORK_ERROR"
	CodeDecode       Code = "DECODE_ERROR"
	CodeBackend      Code = "BACKEND_ERROR"
	CodePayment      Code = "PAYMENT_ERROR"
)

// Metadata describes how a code surfaces to the user. Transient errors are
// shown as auto-dismissing banners; the rest render inline.
type Metadata struct {
	Transient     bool
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Transient:     true,
		PublicMessage: "validation failed",
	},
	CodeUnauthorized: {
		Transient:     false,
		PublicMessage: "please sign in to continue",
	},
	CodeForbidden: {
		Transient:     false,
		PublicMessage: "access denied",
	},
	CodeNotFound: {
		Transient:     false,
		PublicMessage: "resource not found",
	},
	CodeConflict: {
		Transient:     true,
		PublicMessage: "conflict detected",
	},
	CodeNetwork: {
		Transient:     true,
		PublicMessage: "could not reach the server",
	},
	CodeDecode: {
		Transient:     false,
		PublicMessage: "unexpected data format",
	},
	CodeBackend: {
		Transient:     true,
		PublicMessage: "something went wrong",
	},
	CodePayment: {
		Transient:     false,
		PublicMessage: "payment could not be completed",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeBackend]
}

// FromStatus maps a non-2xx backend response to a domain error. The message
// is taken from the response body's "message" field when the caller has one;
// otherwise a generic "status <code>" message is synthesized.
func FromStatus(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("status %d", status)
	}
	return New(codeForStatus(status), message)
}

func codeForStatus(status int) Code {
	switch status {
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusPaymentRequired:
		return CodePayment
	default:
		return CodeBackend
	}
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeBackend
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsCode reports whether err carries the given domain code.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}

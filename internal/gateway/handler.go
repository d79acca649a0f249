package gateway

import (
	"fmt"
	"net/http"

	"github.com/AgentTarik/gosat-api/internal/envelope"
)

// CallError describes a failed partner call. Code is the partner HTTP status,
// or 0 when no response was received.
type CallError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

func (e *CallError) fields() map[string]any {
	return map[string]any{
		"message": e.Message,
		"code":    e.Code,
	}
}

// SuccessFunc turns a decoded partner body into an envelope.
type SuccessFunc func(body any) envelope.Envelope

// ErrorFunc turns a failed call into an envelope.
type ErrorFunc func(err *CallError) envelope.Envelope

// OnSuccess is one of Status or SuccessFunc.
type OnSuccess interface {
	successHandler() SuccessFunc
}

// OnError is one of Status, Described or ErrorFunc.
type OnError interface {
	errorHandler() ErrorFunc
}

// Status answers with a fixed status code. Invalid codes fall back to 200 on
// success and 500 on error.
type Status int

func (s Status) successHandler() SuccessFunc {
	code := int(s)
	if !envelope.ValidStatus(code) {
		code = http.StatusOK
	}
	return func(body any) envelope.Envelope {
		return envelope.Build(body, code)
	}
}

func (s Status) errorHandler() ErrorFunc {
	code := int(s)
	if !envelope.ValidStatus(code) {
		code = http.StatusInternalServerError
	}
	return func(err *CallError) envelope.Envelope {
		return envelope.Build(err.fields(), code)
	}
}

// Described reports the failure together with a human readable explanation.
type Described struct {
	Status  int
	Details string
}

// Details returns a Described error handler answering 500.
func Details(text string) Described {
	return Described{Details: text}
}

func (d Described) errorHandler() ErrorFunc {
	code := d.Status
	if !envelope.ValidStatus(code) {
		code = http.StatusInternalServerError
	}
	details := d.Details
	return func(err *CallError) envelope.Envelope {
		body := err.fields()
		body["details"] = details
		return envelope.Build(body, code)
	}
}

func (f SuccessFunc) successHandler() SuccessFunc { return f }

func (f ErrorFunc) errorHandler() ErrorFunc { return f }

func resolveSuccess(h OnSuccess) SuccessFunc {
	if h != nil {
		if f := h.successHandler(); f != nil {
			return f
		}
	}
	return Status(http.StatusOK).successHandler()
}

func resolveError(h OnError) ErrorFunc {
	if h != nil {
		if f := h.errorHandler(); f != nil {
			return f
		}
	}
	return Status(http.StatusInternalServerError).errorHandler()
}

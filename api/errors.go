package api

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// FallbackMessage is reported when the server supplies no usable detail.
const FallbackMessage = "Error en la petición"

// RequestError is the single failure kind of the client. StatusCode is zero
// when the request never produced a response.
type RequestError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Message    string
	// Body is the raw error body; always nil for GET.
	Body []byte
	Err  error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// detailMessage returns the body's string "detail" field, or the fallback
// message when the body is not JSON or carries no such field.
func detailMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return FallbackMessage
	}
	detail := gjson.GetBytes(body, "detail")
	if detail.Type != gjson.String || detail.Str == "" {
		return FallbackMessage
	}
	return detail.Str
}

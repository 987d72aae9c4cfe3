// Package result defines the uniform envelope returned by every orchestrator
// operation. Business failures (not-found, validation, capacity, conflict)
// are recovered into the envelope at the handler boundary and never escape
// as errors; infrastructure failures are logged there and downgraded to a
// generic 500 envelope with no internal detail in the message.
package result

import "net/http"

// Result is the success/failure wrapper exposed to callers. StatusCode
// follows HTTP conventions: 200 on success, 400/404 for business failures,
// 500 for unexpected ones.
type Result[T any] struct {
	IsError    bool   `json:"isError"`
	Data       T      `json:"data"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// Ok wraps a successful payload.
func Ok[T any](data T) Result[T] {
	return Result[T]{Data: data, StatusCode: http.StatusOK}
}

// OkWithMessage wraps a successful payload with a user-facing message.
func OkWithMessage[T any](data T, message string) Result[T] {
	return Result[T]{Data: data, Message: message, StatusCode: http.StatusOK}
}

// Fail wraps a business failure with a message and status code. Data stays
// at the zero value.
func Fail[T any](message string, statusCode int) Result[T] {
	return Result[T]{IsError: true, Message: message, StatusCode: statusCode}
}

// NotFound is a 404 failure.
func NotFound[T any](message string) Result[T] {
	return Fail[T](message, http.StatusNotFound)
}

// BadRequest is a 400 failure.
func BadRequest[T any](message string) Result[T] {
	return Fail[T](message, http.StatusBadRequest)
}

// Internal is the generic 500 failure. The original error is logged by the
// caller, never surfaced here.
func Internal[T any](message string) Result[T] {
	return Fail[T](message, http.StatusInternalServerError)
}

package response

import (
	"encoding/json"
	"net/http"

	"edurooms/shared/constant"
	"edurooms/shared/failure"
	"edurooms/shared/logger"
)

type Data[T any] struct {
	Message string `json:"message"`
	Data    *T     `json:"data,omitempty"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Message struct {
	Message string `json:"message"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: message})
}

// WithJSON sends a response containing a message and a JSON object
func WithJSON(writer http.ResponseWriter, code int, message string, jsonPayload any) {
	response(writer, code, Data[any]{Message: message, Data: &jsonPayload})
}

// WithError sends a response with the failure code and message. Errors that are not
// failures are reported as internal errors without leaking their text.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = http.StatusText(http.StatusInternalServerError)
	}

	response(writer, code, Error{Code: code, Message: msg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	response(writer, http.StatusTooManyRequests, Error{Code: http.StatusTooManyRequests, Message: constant.ResponseErrorRequestLimitExceeded})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Error{Code: http.StatusServiceUnavailable, Message: constant.ResponseErrorPrepareShutdown})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Error{Code: http.StatusServiceUnavailable, Message: constant.ResponseErrorUnhealthy})
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}

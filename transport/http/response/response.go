package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"tablebook/shared/constant"
	"tablebook/shared/failure"
	"tablebook/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

// WithJSON sends a response containing a JSON object under "data".
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends a response with an error message. Server side failures never leak their
// message to the client.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := err.Error()

	if code >= http.StatusInternalServerError {
		logger.ErrorWithStack(err)

		errMsg = constant.ResponseErrorInternal
	}

	response(writer, code, Error{Error: &errMsg})
}

// MethodNotAllowed answers a verb the route does not serve and lists the ones it does.
func MethodNotAllowed(allowed ...string) http.HandlerFunc {
	allow := strings.Join(allowed, ", ")

	return func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set(constant.RequestHeaderAllow, allow)
		WithError(writer, failure.MethodNotAllowed(request.Method))
	}
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithError(writer, &failure.Failure{Code: http.StatusTooManyRequests, Message: constant.ResponseErrorRequestLimitExceeded})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	message := constant.ResponseErrorPrepareShutdown

	response(writer, http.StatusServiceUnavailable, Error{Error: &message})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	message := constant.ResponseErrorUnhealthy

	response(writer, http.StatusServiceUnavailable, Error{Error: &message})
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

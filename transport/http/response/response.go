package response

import (
	"encoding/json"
	"maps"
	"net/http"
	"storeflight/shared/constant"
	"storeflight/shared/failure"
	"storeflight/shared/logger"
)

// Fields are the keys written next to "ok" in a success envelope.
type Fields map[string]any

type Error struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
	Path    string `json:"path,omitempty"`
}

type Message struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// WithOK sends {"ok":true} merged with fields.
func WithOK(writer http.ResponseWriter, code int, fields Fields) {
	payload := Fields{"ok": true}
	maps.Copy(payload, fields)

	response(writer, code, payload)
}

// WithJSON sends the payload without an envelope.
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, jsonPayload)
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{OK: code < http.StatusBadRequest, Message: message})
}

// WithError sends the failure carried by err. Server errors never expose
// their message.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	if code >= http.StatusInternalServerError {
		response(writer, code, Error{Error: failure.MessageServerError})

		return
	}

	response(writer, code, Error{Error: err.Error(), Details: failure.GetDetails(err)})
}

// WithNotFound sends the envelope for an unmatched route.
func WithNotFound(writer http.ResponseWriter, path string) {
	response(writer, http.StatusNotFound, Error{Error: failure.MessageNotFound, Path: path})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	response(writer, http.StatusTooManyRequests, Error{Error: constant.ResponseErrorRequestLimitExceeded})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Error{Error: constant.ResponseErrorPrepareShutdown})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Error{Error: constant.ResponseErrorUnhealthy})
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}

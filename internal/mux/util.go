package mux

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/sirupsen/logrus"
)

// remoteAddr strips the port from the request's remote address
func remoteAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not encode response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// writeJSONError answers with an errorResponse
// Server errors are logged and only their status text is sent.
func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	res := errorResponse{
		Message:    http.StatusText(statusCode),
		StatusCode: statusCode,
	}

	switch {
	case statusCode >= http.StatusInternalServerError:
		logrus.WithError(err).WithField("statusCode", statusCode).Error("request failed")
	case err != nil:
		res.Message = err.Error()
	}

	writeJSON(w, statusCode, res)
}

func notFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, nil)
	}
}

func methodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, nil)
	}
}

package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aretw0/itemstore/pkg/core"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeJSON = "application/json"
)

// Normalize maps an outcome onto a status code and body.
// A successful List yields its items as a JSON array; every other outcome
// yields its message as plain text.
func Normalize(o core.Outcome) (status int, contentType string, body []byte) {
	switch o.Kind {
	case core.KindCreated:
		status = http.StatusCreated
	case core.KindSuccess:
		status = http.StatusOK
	case core.KindNotFound:
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
	}

	if o.Kind == core.KindSuccess && o.Items != nil {
		data, err := json.Marshal(o.Items)
		if err != nil {
			return http.StatusInternalServerError, contentTypeText, []byte(core.MsgListFailed)
		}
		return status, contentTypeJSON, data
	}
	return status, contentTypeText, []byte(o.Message)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, o core.Outcome) {
	status, contentType, body := Normalize(o)
	s.write(w, r, status, contentType, body)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.logger.WarnContext(r.Context(), "write error", "error", err, "request_id", requestIDFrom(r))
	}
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.DebugContext(r.Context(), "rejected request body",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
		slog.String("request_id", requestIDFrom(r)),
	)
	s.write(w, r, http.StatusBadRequest, contentTypeText, []byte(msgBadRequest))
}

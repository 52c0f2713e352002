package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/middleware"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, def *apperrors.Definition) {
	respondWithJSON(w, def.Status, errorResponse{Error: def.Message, Code: def.Code})
}

// respondWithAppError maps err to its coded response. Server errors are logged
// with the underlying cause, which never reaches the client.
func respondWithAppError(w http.ResponseWriter, log *zap.Logger, r *http.Request, err error) {
	def := apperrors.From(err)
	if def.Status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	respondWithError(w, def)
}

func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondWithError(w, apperrors.NotAuthenticated)
		return "", false
	}
	return id, true
}

// decodeJSON reads the body into dst. An empty body is accepted when optional.
func decodeJSON(r *http.Request, dst interface{}, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) && optional {
		return nil
	}
	if err != nil {
		return apperrors.InvalidRequest
	}
	return nil
}

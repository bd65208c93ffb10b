// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the request/response helpers shared by the JSON
// API features. Every response uses the {message, data, token} envelope the
// clients already parse; errors surface as {message} with the status code
// derived from the apperr kind.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/contesthub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// maxBodyBytes caps JSON request bodies. The API only accepts small control
// payloads; file uploads go through the multipart uploads feature.
const maxBodyBytes = 1 << 20

// Envelope is the standard response shape.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"`
}

// Decode reads a JSON body into dst, returning an Invalid apperr on
// malformed input.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return apperr.Wrap(apperr.Invalid, "Request body is not valid JSON", err)
	}
	return nil
}

// Write sends v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK sends a 200 envelope.
func OK(w http.ResponseWriter, message string, data any) {
	Write(w, http.StatusOK, Envelope{Message: message, Data: data})
}

// Created sends a 201 envelope.
func Created(w http.ResponseWriter, message string, data any) {
	Write(w, http.StatusCreated, Envelope{Message: message, Data: data})
}

// Error renders err as a JSON envelope. Classified errors keep their
// message and mapped status; anything else becomes a 500 with the error
// text, logged at error level.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		if ae.Kind == apperr.Internal && log != nil {
			log.Error("request failed", zap.Error(err))
		}
		Write(w, apperr.HTTPStatus(ae.Kind), Envelope{Message: ae.Message, Data: ae.Data})
		return
	}
	if log != nil {
		log.Error("request failed", zap.Error(err))
	}
	Write(w, http.StatusInternalServerError, Envelope{Message: err.Error()})
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Sentinel errors for the box/image pipeline. Handlers map these to HTTP
// status codes; everything else is a 500.
var (
	ErrInvalidBox    = errors.New("invalid box submission")
	ErrBadImageData  = errors.New("malformed image data")
	ErrDuplicateBox  = errors.New("box already exists")
	ErrImageNotFound = errors.New("image not found")
	ErrStorageWrite  = errors.New("object storage write failed")
	ErrStorageRead   = errors.New("object storage read failed")
	ErrBoxInsert     = errors.New("box insert failed")
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError sends a JSON error body with the given status code.
func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aretw0/itemstore/pkg/core"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

const msgBadRequest = "Invalid request body"

var errMissingField = errors.New("missing field")

// itemRequest distinguishes an absent field from an empty string.
type itemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type deleteRequest struct {
	Name *string `json:"name"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("decode body: trailing data")
	}
	return nil
}

func decodeItem(w http.ResponseWriter, r *http.Request) (core.Item, error) {
	var req itemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return core.Item{}, err
	}
	if req.Name == nil {
		return core.Item{}, fmt.Errorf("%w: name", errMissingField)
	}
	if req.Description == nil {
		return core.Item{}, fmt.Errorf("%w: description", errMissingField)
	}
	return core.Item{Name: *req.Name, Description: *req.Description}, nil
}

func decodeDelete(w http.ResponseWriter, r *http.Request) (core.DeleteRequest, error) {
	var req deleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return core.DeleteRequest{}, err
	}
	if req.Name == nil {
		return core.DeleteRequest{}, fmt.Errorf("%w: name", errMissingField)
	}
	return core.DeleteRequest{Name: *req.Name}, nil
}

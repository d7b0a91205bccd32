package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError represents a non-2xx response from the item server.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// Message returns the server's plain-text message.
func (e *HTTPError) Message() string {
	if e == nil {
		return ""
	}
	return string(e.Body)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

package rest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HTTPError is returned for a non-2xx response.
type HTTPError struct {
	Status int
	Body   string
	// Code and Message are filled when the body is a PostgREST error object.
	Code    string
	Message string
}

type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func newHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{
		Status: status,
		Body:   strings.TrimSpace(string(body)),
	}

	var pe postgrestError
	if err := json.Unmarshal(body, &pe); err == nil {
		e.Code = pe.Code
		e.Message = pe.Message
	}
	return e
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		if e.Code != "" {
			return fmt.Sprintf("unexpected status code: %d, %s: %s", e.Status, e.Code, e.Message)
		}
		return fmt.Sprintf("unexpected status code: %d, %s", e.Status, e.Message)
	}
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.Status, e.Body)
}

// StatusCode lets the retry classifier inspect the status.
func (e *HTTPError) StatusCode() int {
	return e.Status
}

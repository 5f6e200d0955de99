package ynab

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is returned when the API answers with a non-200 status.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	msg := e.Detail()
	if msg == "" {
		msg = strings.TrimSpace(e.Body)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// Detail returns the "detail" field of a YNAB error body, or "" if the body
// is not in that shape.
func (e *APIError) Detail() string {
	var body struct {
		Error struct {
			Detail string `json:"detail"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Body), &body); err != nil {
		return ""
	}
	return body.Error.Detail
}

// ConnectivityError is returned when a request could not be sent or its
// response could not be read, including per-call timeouts.
type ConnectivityError struct {
	Method string
	Path   string
	Err    error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// ParseError is returned for malformed JSON or a missing required field.
type ParseError struct {
	Index int    // position in the transactions list; -1 for the envelope
	Field string // empty when the whole document failed to decode
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Index < 0 && e.Field == "":
		return fmt.Sprintf("decoding response: %v", e.Err)
	case e.Index < 0:
		return fmt.Sprintf("decoding response: %s: %v", e.Field, e.Err)
	default:
		return fmt.Sprintf("transaction %d: %s: %v", e.Index, e.Field, e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

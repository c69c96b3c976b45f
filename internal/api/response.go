package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	msgEmptyResponse = "Empty response from server"
	msgRequestFailed = "Request failed"
	snippetLen       = 100
)

// readBody consumes the body once and turns a non-2xx status into *Error.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Message: errorMessage(body)}
	}
	return body, nil
}

// decodeJSON parses a 2xx body into out.
func decodeJSON(body []byte, out any) error {
	if len(strings.TrimSpace(string(body))) == 0 {
		return invalidResponse(body, msgEmptyResponse)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return invalidResponse(body, "Invalid JSON response: %s", snippet(body))
	}
	return nil
}

// errorMessage extracts a readable message from an error body: detail
// first, then message, then the raw text.
func errorMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		if text != "" {
			return text
		}
		return msgRequestFailed
	}
	if msg := detailMessage(payload.Detail); msg != "" {
		return msg
	}
	if msg := stringOrJSON(payload.Message); msg != "" {
		return msg
	}
	if text != "" {
		return text
	}
	return msgRequestFailed
}

type validationIssue struct {
	Loc     []any  `json:"loc"`
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

// detailMessage renders detail as a string, or a validation list as
// "loc.path: msg" items joined by commas.
func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var issues []validationIssue
	if err := json.Unmarshal(raw, &issues); err == nil {
		parts := make([]string, 0, len(issues))
		for _, is := range issues {
			loc := make([]string, len(is.Loc))
			for i, l := range is.Loc {
				loc[i] = fmt.Sprint(l)
			}
			msg := is.Msg
			if msg == "" {
				msg = is.Message
			}
			parts = append(parts, strings.Join(loc, ".")+": "+msg)
		}
		return strings.Join(parts, ", ")
	}
	return stringOrJSON(raw)
}

func stringOrJSON(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func snippet(body []byte) string {
	r := []rune(string(body))
	if len(r) > snippetLen {
		r = r[:snippetLen]
	}
	return string(r)
}

package utils

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	pkghttp "github.com/mashaweer/mashaweer/internal/pkg/http"
)

var whitespace = regexp.MustCompile(`\s+`)

// SanitizeFileName replaces every whitespace run with an underscore
func SanitizeFileName(name string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(name), "_")
}

// ExtractErrorMessage pulls a human readable message out of a failed side effect.
// It prefers a JSON "message" or "error" field in a remote response body and
// falls back to the error text itself.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *pkghttp.StatusError
	if errors.As(err, &statusErr) {
		if msg := messageFromJSON(statusErr.Body); msg != "" {
			return msg
		}
	}

	if msg := messageFromJSON([]byte(err.Error())); msg != "" {
		return msg
	}
	return err.Error()
}

func messageFromJSON(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

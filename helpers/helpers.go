package helpers

import (
	"encoding/base64"
	"mime"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeFileNameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

func Base64Encode(content string) string {
	return base64.StdEncoding.EncodeToString([]byte(content))
}

func Base64Decode(content string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(strings.TrimSpace(content))
}

// SanitizeFileName turns a user supplied file name into a storage key:
// lowercase, spaces become underscores, anything outside [a-zA-Z0-9_.-] is dropped.
func SanitizeFileName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	return unsafeFileNameChars.ReplaceAllString(name, "")
}

// ContentTypeFromFileName returns "" when the extension is unknown.
func ContentTypeFromFileName(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}

func IsUnsubscribed(value string) bool {
	return strings.ToLower(strings.TrimSpace(value)) == "true"
}

// ColumnIndex finds name in header ignoring case and surrounding whitespace, -1 if absent.
func ColumnIndex(header []string, name string) int {
	for i, column := range header {
		if strings.EqualFold(strings.TrimSpace(column), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

func IsLocalhostURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := parsed.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	maxUsernameLength = 100
	maxTitleLength    = 50
	maxContentLength  = 1000
)

// AllowedUploadExtensions is the upload extension allow-list (lowercase, no dot)
var AllowedUploadExtensions = map[string]bool{
	"txt":  true,
	"pdf":  true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateUsername checks if a username is acceptable
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ValidationError{Field: "username", Message: "username is required"}
	}
	if len(username) > maxUsernameLength {
		return ValidationError{Field: "username", Message: "username is too long"}
	}
	return nil
}

// ValidatePassword checks if a password is acceptable
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// ValidatePostTitle checks the post title bounds
func ValidatePostTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ValidationError{Field: "title", Message: "title is required"}
	}
	if len(title) > maxTitleLength {
		return ValidationError{Field: "title", Message: "title is too long"}
	}
	return nil
}

// ValidatePostContent checks the post content bounds
func ValidatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ValidationError{Field: "content", Message: "content is required"}
	}
	if len(content) > maxContentLength {
		return ValidationError{Field: "content", Message: "content is too long"}
	}
	return nil
}

// ValidateCommentContent checks comment content (unbounded length)
func ValidateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ValidationError{Field: "content", Message: "content is required"}
	}
	return nil
}

// FilterMarkup neutralizes markup in user-submitted text before it is stored
func FilterMarkup(s string) string {
	return strings.ReplaceAll(s, "<", "&lt;")
}

// AllowedFileExtension reports whether the filename carries an allow-listed
// extension
func AllowedFileExtension(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}
	return AllowedUploadExtensions[ext]
}

// SecureFilename sanitizes an upload filename so that no path traversal
// segments or separators survive. Returns an empty string if nothing safe
// remains.
func SecureFilename(filename string) string {
	// Drop any client-supplied directory part, for either separator style
	filename = filename[strings.LastIndexByte(filename, '/')+1:]
	filename = filename[strings.LastIndexByte(filename, '\\')+1:]

	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	cleaned := b.String()

	// Collapse dot runs so ".." can never reappear
	for strings.Contains(cleaned, "..") {
		cleaned = strings.ReplaceAll(cleaned, "..", ".")
	}
	cleaned = strings.Trim(cleaned, "._")

	return cleaned
}

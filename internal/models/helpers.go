package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// ContentHash returns the SHA-256 hex digest of content. Used everywhere a
// cache layer needs change detection on raw page or announcement bodies.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// PageKey builds the record key for a converted page, unique per
// (course id, page slug).
func PageKey(courseID int, pageSlug string) string {
	return fmt.Sprintf("%d:%s", courseID, pageSlug)
}

// ParseCanvasTime parses a Canvas-reported timestamp. Canvas emits RFC 3339
// with a Z suffix; date-only strings are accepted too.
func ParseCanvasTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse canvas time %q: %w", s, err)
	}
	return t, nil
}

// RecordIDString safely extracts the string ID from a SurrealDB RecordID.
// Returns an error if the ID is not a string type.
func RecordIDString(id surrealmodels.RecordID) (string, error) {
	s, ok := id.ID.(string)
	if !ok {
		return "", fmt.Errorf("unexpected ID type: %T (expected string)", id.ID)
	}
	return s, nil
}

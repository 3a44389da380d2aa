package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAborted is returned when the operator declines the commit.
	ErrAborted = errors.New("migration aborted before commit")
	// ErrNotFound is returned by lookups of a single record that does not exist.
	ErrNotFound = errors.New("no document found")
)

// SchemaViolation means a legacy record matches none of its entity's known shapes.
// Fields lists the failures against the closest variant.
type SchemaViolation struct {
	Entity   string
	RecordID string
	Variant  string
	Fields   []string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation in %s %s (closest shape %s): %s", e.Entity, e.RecordID, e.Variant, strings.Join(e.Fields, "; "))
}

// UnexpectedHost means a story URL does not belong to the migrated site.
type UnexpectedHost struct {
	URL      string
	Expected string
}

func (e *UnexpectedHost) Error() string {
	return fmt.Sprintf("unexpected host in %q, expected %s", e.URL, e.Expected)
}

// CycleDetected means walking parent links from a comment never reached a root.
type CycleDetected struct {
	CommentID string
	Chain     []string
}

func (e *CycleDetected) Error() string {
	return fmt.Sprintf("cycle in parent chain of comment %s: %s", e.CommentID, strings.Join(e.Chain, " -> "))
}

// DanglingReference is a recoverable gap in the legacy data. It is reported,
// never returned as a fatal error.
type DanglingReference struct {
	Entity   string
	RecordID string
	Field    string
	Target   string
}

func (e *DanglingReference) Error() string {
	return fmt.Sprintf("%s %s: %s references missing %s", e.Entity, e.RecordID, e.Field, e.Target)
}

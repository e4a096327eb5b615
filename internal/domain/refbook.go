package domain

import "time"

// Refbook is a named reference table identified by a unique code.
// Refbooks are populated offline (see the seed command) and are read-only
// for the HTTP API.
type Refbook struct {
	ID          int64
	Code        string
	Name        string
	Description *string
}

// RefbookVersion is a dated revision of a refbook's contents. It becomes
// effective on StartDate. The triple (RefbookID, Version, StartDate) is unique,
// so the same label may repeat with a different start date.
type RefbookVersion struct {
	ID        int64
	RefbookID int64
	Version   string
	StartDate time.Time
}

// RefbookElement is a single code/value pair belonging to exactly one version.
// Code is unique within its version.
type RefbookElement struct {
	ID        int64
	VersionID int64
	Code      string
	Value     string
}

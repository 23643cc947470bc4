// Package model defines the core domain types for the sales pipeline.
package model

import (
	"strings"
	"time"
)

// Deal represents a single pipeline record: one sales opportunity with a
// company, an assignee, and a position in the stage pipeline.
//
// Date fields are kept as stored strings ("YYYY-MM-DD" or
// "YYYY-MM-DD HH:MM") because historical rows mix both forms; use the
// normalize package to turn them into calendar dates.
type Deal struct {
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ID               string
	Name             string // Contact or opportunity name
	AccountID        string
	Stage            string // Raw stage value; resolve via the stage package
	AssignedTo       string // May carry a trailing honorific
	FirstContactDate string
	NextContactDate  string
	LastActivityDate string
	AmountRange      string // Bucket label or free-typed formatted number
	NeedsSummary     string // Comma-joined tag list
	Priority         string
	Grade            string
	CloseReason      string
}

// NeedsTags splits the comma-joined needs summary into individual tags,
// preserving stored order and dropping empty entries.
func (d *Deal) NeedsTags() []string {
	if strings.TrimSpace(d.NeedsSummary) == "" {
		return nil
	}
	parts := strings.Split(d.NeedsSummary, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// HasNeedsTag reports whether the deal carries the given tag, ignoring
// surrounding whitespace and stored order.
func (d *Deal) HasNeedsTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	for _, t := range d.NeedsTags() {
		if t == tag {
			return true
		}
	}
	return false
}

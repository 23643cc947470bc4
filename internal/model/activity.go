package model

import (
	"encoding/json"
	"strings"
	"time"
)

// ActivityType identifies the kind of interaction an activity records.
type ActivityType string

const (
	// ActivityCall is a phone call.
	ActivityCall ActivityType = "call"
	// ActivityMeeting is an in-person or video meeting.
	ActivityMeeting ActivityType = "meeting"
	// ActivityEmail is an email exchange.
	ActivityEmail ActivityType = "email"
	// ActivityText is a text or messenger exchange.
	ActivityText ActivityType = "text"
	// ActivityVisit is an on-site visit.
	ActivityVisit ActivityType = "visit"
	// ActivityNote is a free-form note with no outreach attached.
	ActivityNote ActivityType = "note"
)

// ValidActivityType reports whether t is one of the known activity types.
func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityCall, ActivityMeeting, ActivityEmail, ActivityText, ActivityVisit, ActivityNote:
		return true
	}
	return false
}

// Attachment is a file reference persisted alongside an activity. The URL
// points into the blob store; Name is the original file name shown to the
// user, independent of the storage path.
type Attachment struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Activity is one entry in a deal's chronological interaction log.
type Activity struct {
	CreatedAt   time.Time
	ID          string
	DealID      string
	Type        ActivityType
	Date        string // "YYYY-MM-DD"
	Content     string
	AssignedTo  string
	QuotationID string // Optional link to a quotation
	Attachments []Attachment
}

// ParseAttachments decodes the stored attachment field. Historical rows
// hold an empty string, a JSON array, a double-encoded JSON string, or
// garbage; every malformed form decodes to an empty list rather than an
// error.
func ParseAttachments(raw string) []Attachment {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil
	}

	var atts []Attachment
	if err := json.Unmarshal([]byte(raw), &atts); err == nil {
		return atts
	}

	// Some rows were written as a JSON string containing the array.
	var inner string
	if err := json.Unmarshal([]byte(raw), &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &atts); err == nil {
			return atts
		}
	}

	return nil
}

// EncodeAttachments serializes attachments for storage. A nil or empty
// list encodes as an empty string so old readers see the field as unset.
func EncodeAttachments(atts []Attachment) string {
	if len(atts) == 0 {
		return ""
	}
	data, err := json.Marshal(atts)
	if err != nil {
		return ""
	}
	return string(data)
}

// Package models defines the durable data models of the MindLens core.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Entry is the durable unit of a diary entry, journaled append-only.
// Once written, an Entry is never mutated in place; corrections are new
// entries carrying Supersedes, deletions are tombstones.
type Entry struct {
	// DocID is a globally unique identifier, generated at creation.
	DocID string `json:"doc_id"`

	// Date is the ISO-8601 calendar date chosen by the user. It is not
	// necessarily the creation time.
	Date string `json:"date"`

	// Text is the normalized transcript or content of the entry. It may be
	// empty only when AttachmentDesc is present.
	Text string `json:"text"`

	// Emotions holds externally supplied emotion labels.
	Emotions []string `json:"emotions,omitempty"`

	// Tags holds externally supplied context labels.
	Tags []string `json:"tags,omitempty"`

	// Sentiment is one of positive/neutral/negative.
	Sentiment string `json:"sentiment"`

	// RiskScore is the normalized risk score in [0,1].
	RiskScore float64 `json:"risk_score"`

	// RiskLabel is the coarse risk classification (Low/Moderate/High).
	RiskLabel string `json:"risk_label"`

	// AttachmentRef is an opaque reference to stored media, if any.
	AttachmentRef string `json:"attachment_ref,omitempty"`

	// AttachmentDesc is a user-provided description of the attachment,
	// included in the embedded text so media-only entries stay searchable.
	AttachmentDesc string `json:"attachment_desc,omitempty"`

	// Supersedes holds the DocID of the entry this record corrects.
	Supersedes string `json:"supersedes,omitempty"`

	// Deleted marks the entry as a tombstone.
	Deleted bool `json:"deleted,omitempty"`

	// CreatedAt is the journal write timestamp in UTC.
	CreatedAt time.Time `json:"created_at"`
}

// EmbeddingText returns the text that is embedded for this entry: the body
// plus the attachment description, when present.
func (e *Entry) EmbeddingText() string {
	if e.AttachmentDesc == "" {
		return e.Text
	}
	if e.Text == "" {
		return "[Attachment]: " + e.AttachmentDesc
	}
	return e.Text + "\n[Attachment]: " + e.AttachmentDesc
}

// NewDocID generates a fresh entry identifier.
func NewDocID() string {
	return uuid.New().String()
}

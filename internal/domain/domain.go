// Package domain holds the records and errors shared across memodex layers.
package domain

import "time"

// Collection names used by the repositories.
const (
	CollectionNotes = "memorynote"
	CollectionTurns = "conversationturn"
)

// Note is a saved study note. ID is assigned by the store on creation and is
// always exposed as a string. Notes are immutable once created.
type Note struct {
	ID        string    `json:"id,omitempty"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// HasTag reports whether the note carries the given tag.
func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Turn is one entry of the append-only conversation log, keyed by session.
type Turn struct {
	ID        string    `json:"id,omitempty"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Detection is the result of a language-detection call.
type Detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// AutoDetection is the degraded detection result returned when the external
// detector cannot be reached or returns nothing usable.
func AutoDetection() Detection {
	return Detection{Language: "auto", Confidence: 0}
}

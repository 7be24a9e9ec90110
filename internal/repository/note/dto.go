package note

import (
	"encoding/json"
	"time"

	"github.com/lumen-cloud/memodex/internal/domain"
)

// record is the stored JSON shape of a note. The id lives in the key, never
// in the document body.
type record struct {
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

func encodeNote(n domain.Note) ([]byte, error) {
	return json.Marshal(record{
		Content:   n.Content,
		Tags:      n.Tags,
		Source:    n.Source,
		CreatedAt: n.CreatedAt,
	})
}

func decodeNote(id string, data []byte) (domain.Note, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.Note{}, err
	}
	return domain.Note{
		ID:        id,
		Content:   rec.Content,
		Tags:      rec.Tags,
		Source:    rec.Source,
		CreatedAt: rec.CreatedAt,
	}, nil
}

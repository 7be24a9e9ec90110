package conversation

import (
	"encoding/json"
	"time"

	"github.com/lumen-cloud/memodex/internal/domain"
)

// record is the stored JSON shape of a turn. The id lives in the key.
type record struct {
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

func encodeTurn(t domain.Turn) ([]byte, error) {
	return json.Marshal(record{
		SessionID: t.SessionID,
		Role:      t.Role,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
	})
}

func decodeTurn(id string, data []byte) (domain.Turn, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.Turn{}, err
	}
	return domain.Turn{
		ID:        id,
		SessionID: rec.SessionID,
		Role:      rec.Role,
		Content:   rec.Content,
		CreatedAt: rec.CreatedAt,
	}, nil
}

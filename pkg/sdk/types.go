package memodex

import (
	"time"

	"github.com/lumen-cloud/memodex/internal/domain"
)

// Note is a saved study note. ID is assigned on save.
type Note struct {
	ID        string
	Content   string
	Tags      []string
	Source    string
	CreatedAt time.Time
}

// Turn is one entry of the conversation log.
type Turn struct {
	ID        string
	SessionID string
	Role      string
	Content   string
	CreatedAt time.Time
}

// Detection is a language-detection result. An unreachable detector yields
// {Language: "auto", Confidence: 0}.
type Detection struct {
	Language   string
	Confidence float64
}

func toInternalNote(n Note) domain.Note {
	return domain.Note{
		ID:        n.ID,
		Content:   n.Content,
		Tags:      n.Tags,
		Source:    n.Source,
		CreatedAt: n.CreatedAt,
	}
}

func fromInternalNote(n domain.Note) Note {
	return Note{
		ID:        n.ID,
		Content:   n.Content,
		Tags:      n.Tags,
		Source:    n.Source,
		CreatedAt: n.CreatedAt,
	}
}

func toInternalTurn(t Turn) domain.Turn {
	return domain.Turn{
		ID:        t.ID,
		SessionID: t.SessionID,
		Role:      t.Role,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
	}
}

func fromInternalTurn(t domain.Turn) Turn {
	return Turn{
		ID:        t.ID,
		SessionID: t.SessionID,
		Role:      t.Role,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
	}
}

func fromInternalDetection(d domain.Detection) Detection {
	return Detection{Language: d.Language, Confidence: d.Confidence}
}

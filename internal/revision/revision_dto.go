package revision

import (
	"encoding/json"
	"time"
)

type RevisionResponse struct {
	Rev        int64           `json:"rev"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Kind       string          `json:"kind"`
	RevisedAt  string          `json:"revised_at"`
	Snapshot   json.RawMessage `json:"snapshot"`
}

func MapToResponse(rev Revision) RevisionResponse {
	return RevisionResponse{
		Rev:        rev.Rev,
		EntityType: string(rev.EntityType),
		EntityID:   rev.EntityID,
		Kind:       string(rev.Kind),
		RevisedAt:  rev.RevisedAt.UTC().Format(time.RFC3339Nano),
		Snapshot:   json.RawMessage(rev.Snapshot),
	}
}

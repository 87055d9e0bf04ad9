package project

import "time"

// BotProject is a saved bot generation. Projects are immutable once created;
// they are only ever listed, fetched or deleted.
type BotProject struct {
	ID           string    `json:"id"` // UUIDv4
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Code         string    `json:"code"`
	Dependencies []string  `json:"dependencies"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Record is the durable document stored in Redis.
// Seq is the store's insertion sequence and defines list order.
type Record struct {
	Seq int64 `json:"seq"`
	BotProject
}

// NewBotProject builds a project from a validated resource.
func NewBotProject(r *Resource, id string, createdAt time.Time) BotProject {
	deps := make([]string, 0, len(r.Dependencies))
	for _, d := range r.Dependencies {
		if d != "" {
			deps = append(deps, d)
		}
	}
	return BotProject{
		ID:           id,
		Name:         r.Name,
		Description:  r.Description,
		Code:         r.Code,
		Dependencies: deps,
		CreatedAt:    createdAt.UTC(),
	}
}

package character

import "time"

// Character is a fictional person appearing in a novel.
type Character struct {
	ID          string    `json:"id"`
	NovelID     string    `json:"novel_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated character listing.
type Filter struct {
	NovelID string
}

// Global field names for validation
const (
	FieldNovelID     = "novel_id"
	FieldName        = "name"
	FieldDescription = "description"
)

package publisher

import "time"

// Publisher represents the company that published a novel.
type Publisher struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  *string   `json:"location"`
	Website   *string   `json:"website"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated publisher search.
type Filter struct {
	Query string
}

// Global field names for validation
const (
	FieldName     = "name"
	FieldLocation = "location"
	FieldWebsite  = "website"
)

package author

import "time"

// Author represents the writer of one or more novels.
type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	Website   *string   `json:"website"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated author search.
type Filter struct {
	Query string // Case-insensitive match against name
}

// Global field names for validation
const (
	FieldName    = "name"
	FieldBio     = "bio"
	FieldWebsite = "website"
)

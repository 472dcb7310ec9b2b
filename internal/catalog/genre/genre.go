package genre

import "time"

// Genre is a thematic classification a novel can be tagged with.
type Genre struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const FieldName = "name"

package review

import "time"

// Review is a rated, written opinion a user attaches to a novel.
type Review struct {
	ID        string    `json:"id"`
	NovelID   string    `json:"novel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input is the write payload for creating or updating a review.
type Input struct {
	NovelID string `json:"novel_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Filter narrows a review listing.
type Filter struct {
	NovelID string
	UserID  string
}

// Global field names for validation
const (
	FieldNovelID = "novel_id"
	FieldRating  = "rating"
	FieldComment = "comment"
)

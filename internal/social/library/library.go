package library

import "time"

// Favorite marks a novel a user wants quick access to.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	NovelID   string    `json:"novel_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Follow subscribes a user to updates from either an author or a novel.
// Exactly one of the two targets is set.
type Follow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	AuthorID  *string   `json:"author_id"`
	NovelID   *string   `json:"novel_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MyListEntry places a novel into one of the user's named collections.
type MyListEntry struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	NovelID        string    `json:"novel_id"`
	CollectionName string    `json:"collection_name"`
	CreatedAt      time.Time `json:"created_at"`
}

// DefaultCollection is used when a MyList entry names no collection.
const DefaultCollection = "default"

// Global field names for validation
const (
	FieldNovelID        = "novel_id"
	FieldAuthorID       = "author_id"
	FieldCollectionName = "collection_name"
)

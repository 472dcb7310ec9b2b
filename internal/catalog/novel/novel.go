package novel

import "time"

// Publication status of a novel.
const (
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// NameRef is a named catalogue entity linked to a novel.
type NameRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Novel is the aggregate root of the catalogue: the novel row plus its
// resolved author, publisher, and genre references.
type Novel struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"release_date"`
	CoverImage  *string   `json:"cover_image"`
	Rating      float64   `json:"rating"`
	Status      string    `json:"status"`
	Authors     []NameRef `json:"authors"`
	Publisher   *NameRef  `json:"publisher"`
	Genres      []NameRef `json:"genres"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Input is the write payload for creating or updating a novel.
//
// Authors, publisher, and genres are referenced BY NAME: missing entries are
// created atomically alongside the novel, so a client never has to
// pre-register an author before cataloguing their book.
type Input struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"release_date"`
	CoverImage  *string   `json:"cover_image"`
	Rating      float64   `json:"rating"`
	Status      string    `json:"status"`
	Authors     []string  `json:"authors"`
	Publisher   *string   `json:"publisher"`
	Genres      []string  `json:"genres"`
}

// Filter holds the parameters for a paginated novel listing.
type Filter struct {
	Status  string
	GenreID string
}

// Global field names for validation
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldReleaseDate = "release_date"
	FieldCoverImage  = "cover_image"
	FieldRating      = "rating"
	FieldStatus      = "status"
	FieldAuthors     = "authors"
	FieldPublisher   = "publisher"
	FieldGenres      = "genres"
	FieldQuery       = "q"
)

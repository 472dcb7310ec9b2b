package chapter

import "time"

// Volume groups consecutive chapters of a novel into a published book.
type Volume struct {
	ID          string    `json:"id"`
	NovelID     string    `json:"novel_id"`
	Number      int       `json:"number"`
	ReleaseDate time.Time `json:"release_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Chapter is a single numbered chapter inside a volume.
type Chapter struct {
	ID          string    `json:"id"`
	VolumeID    string    `json:"volume_id"`
	Title       string    `json:"title"`
	Number      int       `json:"number"`
	ReleaseDate time.Time `json:"release_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VolumeFilter narrows a volume listing to one novel.
type VolumeFilter struct {
	NovelID string
}

// ChapterFilter narrows a chapter listing to one volume.
type ChapterFilter struct {
	VolumeID string
}

// Global field names for validation
const (
	FieldNovelID     = "novel_id"
	FieldVolumeID    = "volume_id"
	FieldTitle       = "title"
	FieldNumber      = "number"
	FieldReleaseDate = "release_date"
)

package chapter

import "context"

type Repository interface {
	// Volumes
	ListVolumes(context context.Context, f VolumeFilter, limit, offset int) ([]*Volume, int64, error)
	GetVolume(context context.Context, id string) (*Volume, error)
	CreateVolume(context context.Context, v *Volume) error
	UpdateVolume(context context.Context, v *Volume) error
	DeleteVolume(context context.Context, id string) error

	// Chapters
	ListChapters(context context.Context, f ChapterFilter, limit, offset int) ([]*Chapter, int64, error)
	GetChapter(context context.Context, id string) (*Chapter, error)
	CreateChapter(context context.Context, c *Chapter) error
	UpdateChapter(context context.Context, c *Chapter) error
	DeleteChapter(context context.Context, id string) error
}

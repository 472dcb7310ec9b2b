package novel

import "context"

type Repository interface {
	ListNovels(context context.Context, f Filter, limit, offset int) ([]*Novel, int64, error)
	GetNovel(context context.Context, id string) (*Novel, error)
	CreateNovel(context context.Context, input *Input) (*Novel, error)
	UpdateNovel(context context.Context, id string, input *Input) (*Novel, error)
	DeleteNovel(context context.Context, id string) error
	CountNovels(context context.Context) (int64, error)

	// SearchNovels matches the folded query against novel titles, author
	// names, and genre names.
	SearchNovels(context context.Context, query string, limit, offset int) ([]*Novel, int64, error)
}

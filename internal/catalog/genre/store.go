package genre

import "context"

type Repository interface {
	ListGenres(context context.Context, limit, offset int) ([]*Genre, int64, error)
	GetGenre(context context.Context, id string) (*Genre, error)
	CreateGenre(context context.Context, g *Genre) error
	UpdateGenre(context context.Context, g *Genre) error
	DeleteGenre(context context.Context, id string) error
}

package library

import "context"

type Repository interface {
	// Favorites
	ListFavorites(context context.Context, userID string, limit, offset int) ([]*Favorite, int64, error)
	CreateFavorite(context context.Context, f *Favorite) error
	DeleteFavorite(context context.Context, userID, id string) error

	// Follows
	ListFollows(context context.Context, userID string, limit, offset int) ([]*Follow, int64, error)
	CreateFollow(context context.Context, f *Follow) error
	DeleteFollow(context context.Context, userID, id string) error

	// MyList
	ListMyList(context context.Context, userID, collection string, limit, offset int) ([]*MyListEntry, int64, error)
	CreateMyListEntry(context context.Context, e *MyListEntry) error
	UpdateMyListEntry(context context.Context, e *MyListEntry) error
	DeleteMyListEntry(context context.Context, userID, id string) error
}

package library

import (
	"context"
	"log/slog"
	"strings"

	"github.com/novaria/api/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Favorites

func (service *Service) ListFavorites(ctx context.Context, userID string, limit, offset int) ([]*Favorite, int64, error) {
	return service.repo.ListFavorites(ctx, userID, limit, offset)
}

func (service *Service) AddFavorite(ctx context.Context, userID, novelID string) (*Favorite, error) {
	validator := validate.New()
	validator.Required(FieldNovelID, novelID).UUID(FieldNovelID, novelID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	favorite := &Favorite{UserID: userID, NovelID: novelID}
	if err := service.repo.CreateFavorite(ctx, favorite); err != nil {
		return nil, err
	}

	service.logger.Info("favorite_added",
		slog.String("user_id", userID),
		slog.String("novel_id", novelID),
	)
	return favorite, nil
}

func (service *Service) RemoveFavorite(ctx context.Context, userID, id string) error {
	return service.repo.DeleteFavorite(ctx, userID, id)
}

// # Follows

func (service *Service) ListFollows(ctx context.Context, userID string, limit, offset int) ([]*Follow, int64, error) {
	return service.repo.ListFollows(ctx, userID, limit, offset)
}

// AddFollow subscribes the user to exactly one target: an author or a novel.
func (service *Service) AddFollow(ctx context.Context, userID string, authorID, novelID *string) (*Follow, error) {
	validator := validate.New()

	hasAuthor := authorID != nil && *authorID != ""
	hasNovel := novelID != nil && *novelID != ""
	validator.Custom(FieldAuthorID, hasAuthor != hasNovel, "exactly one of author_id or novel_id must be set")
	if hasAuthor {
		validator.UUID(FieldAuthorID, *authorID)
	}
	if hasNovel {
		validator.UUID(FieldNovelID, *novelID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	follow := &Follow{UserID: userID}
	if hasAuthor {
		follow.AuthorID = authorID
	} else {
		follow.NovelID = novelID
	}

	if err := service.repo.CreateFollow(ctx, follow); err != nil {
		return nil, err
	}

	service.logger.Info("follow_added", slog.String("user_id", userID))
	return follow, nil
}

func (service *Service) RemoveFollow(ctx context.Context, userID, id string) error {
	return service.repo.DeleteFollow(ctx, userID, id)
}

// # MyList

func (service *Service) ListMyList(ctx context.Context, userID, collection string, limit, offset int) ([]*MyListEntry, int64, error) {
	return service.repo.ListMyList(ctx, userID, collection, limit, offset)
}

func (service *Service) AddMyListEntry(ctx context.Context, userID, novelID, collection string) (*MyListEntry, error) {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		collection = DefaultCollection
	}

	validator := validate.New()
	validator.Required(FieldNovelID, novelID).UUID(FieldNovelID, novelID)
	validator.MaxLen(FieldCollectionName, collection, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry := &MyListEntry{UserID: userID, NovelID: novelID, CollectionName: collection}
	if err := service.repo.CreateMyListEntry(ctx, entry); err != nil {
		return nil, err
	}

	service.logger.Info("mylist_entry_added",
		slog.String("user_id", userID),
		slog.String("collection", collection),
	)
	return entry, nil
}

// MoveMyListEntry renames the collection an entry belongs to.
func (service *Service) MoveMyListEntry(ctx context.Context, userID, id, collection string) (*MyListEntry, error) {
	collection = strings.TrimSpace(collection)

	validator := validate.New()
	validator.Required(FieldCollectionName, collection).MaxLen(FieldCollectionName, collection, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry := &MyListEntry{ID: id, UserID: userID, CollectionName: collection}
	if err := service.repo.UpdateMyListEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (service *Service) RemoveMyListEntry(ctx context.Context, userID, id string) error {
	return service.repo.DeleteMyListEntry(ctx, userID, id)
}

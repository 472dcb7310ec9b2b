package genre

import (
	"context"
	"log/slog"

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

func (service *Service) ListGenres(ctx context.Context, limit, offset int) ([]*Genre, int64, error) {
	return service.repo.ListGenres(ctx, limit, offset)
}

func (service *Service) GetGenre(ctx context.Context, id string) (*Genre, error) {
	return service.repo.GetGenre(ctx, id)
}

func (service *Service) CreateGenre(ctx context.Context, genre *Genre) error {
	validator := validate.New()
	validator.Required(FieldName, genre.Name).MaxLen(FieldName, genre.Name, 100)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.CreateGenre(ctx, genre); err != nil {
		return err
	}

	service.logger.Info("genre_created", slog.String("name", genre.Name))
	return nil
}

func (service *Service) UpdateGenre(ctx context.Context, id string, genre *Genre) error {
	genre.ID = id

	validator := validate.New()
	validator.Required(FieldName, genre.Name).MaxLen(FieldName, genre.Name, 100)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateGenre(ctx, genre); err != nil {
		return err
	}

	service.logger.Info("genre_updated", slog.String("genre_id", genre.ID))
	return nil
}

func (service *Service) DeleteGenre(ctx context.Context, id string) error {
	if err := service.repo.DeleteGenre(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("genre_deleted", slog.String("genre_id", id))
	return nil
}

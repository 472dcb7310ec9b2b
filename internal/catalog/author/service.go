package author

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

func (service *Service) ListAuthors(ctx context.Context, filter Filter, limit, offset int) ([]*Author, int64, error) {
	return service.repo.ListAuthors(ctx, filter, limit, offset)
}

func (service *Service) GetAuthor(ctx context.Context, id string) (*Author, error) {
	return service.repo.GetAuthor(ctx, id)
}

func (service *Service) CreateAuthor(ctx context.Context, author *Author) error {
	if err := validateAuthor(author); err != nil {
		return err
	}

	if err := service.repo.CreateAuthor(ctx, author); err != nil {
		return err
	}

	service.logger.Info("author_created", slog.String("name", author.Name))
	return nil
}

func (service *Service) UpdateAuthor(ctx context.Context, id string, author *Author) error {
	author.ID = id

	if err := validateAuthor(author); err != nil {
		return err
	}

	if err := service.repo.UpdateAuthor(ctx, author); err != nil {
		return err
	}

	service.logger.Info("author_updated", slog.String("author_id", author.ID))
	return nil
}

func (service *Service) DeleteAuthor(ctx context.Context, id string) error {
	if err := service.repo.DeleteAuthor(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("author_deleted", slog.String("author_id", id))
	return nil
}

func validateAuthor(author *Author) error {
	validator := validate.New()

	validator.Required(FieldName, author.Name).MaxLen(FieldName, author.Name, 200)
	if author.Bio != nil {
		validator.MaxLen(FieldBio, *author.Bio, 5000)
	}
	if author.Website != nil {
		validator.MaxLen(FieldWebsite, *author.Website, 500)
	}

	return validator.Err()
}

package publisher

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

func (service *Service) ListPublishers(ctx context.Context, filter Filter, limit, offset int) ([]*Publisher, int64, error) {
	return service.repo.ListPublishers(ctx, filter, limit, offset)
}

func (service *Service) GetPublisher(ctx context.Context, id string) (*Publisher, error) {
	return service.repo.GetPublisher(ctx, id)
}

func (service *Service) CreatePublisher(ctx context.Context, publisher *Publisher) error {
	if err := validatePublisher(publisher); err != nil {
		return err
	}

	if err := service.repo.CreatePublisher(ctx, publisher); err != nil {
		return err
	}

	service.logger.Info("publisher_created", slog.String("name", publisher.Name))
	return nil
}

func (service *Service) UpdatePublisher(ctx context.Context, id string, publisher *Publisher) error {
	publisher.ID = id

	if err := validatePublisher(publisher); err != nil {
		return err
	}

	if err := service.repo.UpdatePublisher(ctx, publisher); err != nil {
		return err
	}

	service.logger.Info("publisher_updated", slog.String("publisher_id", publisher.ID))
	return nil
}

func (service *Service) DeletePublisher(ctx context.Context, id string) error {
	if err := service.repo.DeletePublisher(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("publisher_deleted", slog.String("publisher_id", id))
	return nil
}

func validatePublisher(publisher *Publisher) error {
	validator := validate.New()

	validator.Required(FieldName, publisher.Name).MaxLen(FieldName, publisher.Name, 200)
	if publisher.Location != nil {
		validator.MaxLen(FieldLocation, *publisher.Location, 200)
	}
	if publisher.Website != nil {
		validator.MaxLen(FieldWebsite, *publisher.Website, 500)
	}

	return validator.Err()
}

package character

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

func (service *Service) ListCharacters(ctx context.Context, filter Filter, limit, offset int) ([]*Character, int64, error) {
	return service.repo.ListCharacters(ctx, filter, limit, offset)
}

func (service *Service) GetCharacter(ctx context.Context, id string) (*Character, error) {
	return service.repo.GetCharacter(ctx, id)
}

func (service *Service) CreateCharacter(ctx context.Context, character *Character) error {
	if err := validateCharacter(character); err != nil {
		return err
	}

	if err := service.repo.CreateCharacter(ctx, character); err != nil {
		return err
	}

	service.logger.Info("character_created",
		slog.String("name", character.Name),
		slog.String("novel_id", character.NovelID),
	)
	return nil
}

func (service *Service) UpdateCharacter(ctx context.Context, id string, character *Character) error {
	character.ID = id

	if err := validateCharacter(character); err != nil {
		return err
	}

	if err := service.repo.UpdateCharacter(ctx, character); err != nil {
		return err
	}

	service.logger.Info("character_updated", slog.String("character_id", character.ID))
	return nil
}

func (service *Service) DeleteCharacter(ctx context.Context, id string) error {
	if err := service.repo.DeleteCharacter(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("character_deleted", slog.String("character_id", id))
	return nil
}

func validateCharacter(character *Character) error {
	validator := validate.New()

	validator.Required(FieldNovelID, character.NovelID).UUID(FieldNovelID, character.NovelID)
	validator.Required(FieldName, character.Name).MaxLen(FieldName, character.Name, 200)
	if character.Description != nil {
		validator.MaxLen(FieldDescription, *character.Description, 5000)
	}

	return validator.Err()
}

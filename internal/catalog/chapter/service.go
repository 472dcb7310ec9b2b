package chapter

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

// # Volumes

func (service *Service) ListVolumes(ctx context.Context, filter VolumeFilter, limit, offset int) ([]*Volume, int64, error) {
	return service.repo.ListVolumes(ctx, filter, limit, offset)
}

func (service *Service) GetVolume(ctx context.Context, id string) (*Volume, error) {
	return service.repo.GetVolume(ctx, id)
}

func (service *Service) CreateVolume(ctx context.Context, volume *Volume) error {
	if err := validateVolume(volume); err != nil {
		return err
	}

	if err := service.repo.CreateVolume(ctx, volume); err != nil {
		return err
	}

	service.logger.Info("volume_created",
		slog.String("novel_id", volume.NovelID),
		slog.Int("number", volume.Number),
	)
	return nil
}

func (service *Service) UpdateVolume(ctx context.Context, id string, volume *Volume) error {
	volume.ID = id

	if err := validateVolume(volume); err != nil {
		return err
	}

	if err := service.repo.UpdateVolume(ctx, volume); err != nil {
		return err
	}

	service.logger.Info("volume_updated", slog.String("volume_id", volume.ID))
	return nil
}

func (service *Service) DeleteVolume(ctx context.Context, id string) error {
	if err := service.repo.DeleteVolume(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("volume_deleted", slog.String("volume_id", id))
	return nil
}

// # Chapters

func (service *Service) ListChapters(ctx context.Context, filter ChapterFilter, limit, offset int) ([]*Chapter, int64, error) {
	return service.repo.ListChapters(ctx, filter, limit, offset)
}

func (service *Service) GetChapter(ctx context.Context, id string) (*Chapter, error) {
	return service.repo.GetChapter(ctx, id)
}

func (service *Service) CreateChapter(ctx context.Context, chapter *Chapter) error {
	if err := validateChapter(chapter); err != nil {
		return err
	}

	if err := service.repo.CreateChapter(ctx, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_created",
		slog.String("volume_id", chapter.VolumeID),
		slog.Int("number", chapter.Number),
	)
	return nil
}

func (service *Service) UpdateChapter(ctx context.Context, id string, chapter *Chapter) error {
	chapter.ID = id

	if err := validateChapter(chapter); err != nil {
		return err
	}

	if err := service.repo.UpdateChapter(ctx, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_updated", slog.String("chapter_id", chapter.ID))
	return nil
}

func (service *Service) DeleteChapter(ctx context.Context, id string) error {
	if err := service.repo.DeleteChapter(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("chapter_deleted", slog.String("chapter_id", id))
	return nil
}

func validateVolume(volume *Volume) error {
	validator := validate.New()

	validator.Required(FieldNovelID, volume.NovelID).UUID(FieldNovelID, volume.NovelID)
	validator.Custom(FieldNumber, volume.Number > 0, "must be a positive number")
	validator.Custom(FieldReleaseDate, !volume.ReleaseDate.IsZero(), "is required")

	return validator.Err()
}

func validateChapter(chapter *Chapter) error {
	validator := validate.New()

	validator.Required(FieldVolumeID, chapter.VolumeID).UUID(FieldVolumeID, chapter.VolumeID)
	validator.Required(FieldTitle, chapter.Title).MaxLen(FieldTitle, chapter.Title, 300)
	validator.Custom(FieldNumber, chapter.Number > 0, "must be a positive number")
	validator.Custom(FieldReleaseDate, !chapter.ReleaseDate.IsZero(), "is required")

	return validator.Err()
}

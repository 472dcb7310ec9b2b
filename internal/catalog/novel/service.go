package novel

import (
	"context"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/novaria/api/internal/platform/validate"
	"github.com/novaria/api/pkg/pointer"
	"github.com/novaria/api/pkg/slice"
	"github.com/novaria/api/pkg/textnorm"
)

type Service struct {
	repo      Repository
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo: repo,
		// Descriptions are rendered as plain text; strip all markup.
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

func (service *Service) ListNovels(ctx context.Context, filter Filter, limit, offset int) ([]*Novel, int64, error) {
	return service.repo.ListNovels(ctx, filter, limit, offset)
}

func (service *Service) GetNovel(ctx context.Context, id string) (*Novel, error) {
	return service.repo.GetNovel(ctx, id)
}

func (service *Service) CountNovels(ctx context.Context) (int64, error) {
	return service.repo.CountNovels(ctx)
}

func (service *Service) CreateNovel(ctx context.Context, input *Input) (*Novel, error) {
	service.normalizeInput(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	created, err := service.repo.CreateNovel(ctx, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("novel_created",
		slog.String("novel_id", created.ID),
		slog.String("title", created.Title),
	)
	return created, nil
}

func (service *Service) UpdateNovel(ctx context.Context, id string, input *Input) (*Novel, error) {
	service.normalizeInput(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	updated, err := service.repo.UpdateNovel(ctx, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("novel_updated", slog.String("novel_id", updated.ID))
	return updated, nil
}

func (service *Service) DeleteNovel(ctx context.Context, id string) error {
	if err := service.repo.DeleteNovel(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("novel_deleted", slog.String("novel_id", id))
	return nil
}

// SearchNovels folds the query (lowercase, accents stripped) before matching,
// so "Émile" and "emile" find the same rows.
func (service *Service) SearchNovels(ctx context.Context, query string, limit, offset int) ([]*Novel, int64, error) {
	folded := textnorm.Fold(strings.TrimSpace(query))
	if folded == "" {
		return nil, 0, validate.New().Required(FieldQuery, "").Err()
	}

	return service.repo.SearchNovels(ctx, folded, limit, offset)
}

// normalizeInput trims and de-duplicates the name references and strips any
// markup from the description before validation.
func (service *Service) normalizeInput(input *Input) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = service.sanitizer.Sanitize(strings.TrimSpace(input.Description))

	trim := func(s string) string { return strings.TrimSpace(s) }
	input.Authors = slice.Unique(slice.Filter(slice.Map(input.Authors, trim), func(s string) bool { return s != "" }))
	input.Genres = slice.Unique(slice.Filter(slice.Map(input.Genres, trim), func(s string) bool { return s != "" }))

	if input.Publisher != nil {
		if trimmed := strings.TrimSpace(*input.Publisher); trimmed == "" {
			input.Publisher = nil
		} else {
			input.Publisher = pointer.To(trimmed)
		}
	}
}

func validateInput(input *Input) error {
	validator := validate.New()

	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 300)
	validator.MaxLen(FieldDescription, input.Description, 10000)
	validator.Custom(FieldReleaseDate, !input.ReleaseDate.IsZero(), "is required")
	validator.Range(FieldRating, input.Rating, 0, 5)
	validator.Required(FieldStatus, input.Status).OneOf(FieldStatus, input.Status, StatusOngoing, StatusCompleted)
	validator.Custom(FieldAuthors, len(input.Authors) > 0, "at least one author is required")

	for _, name := range input.Authors {
		validator.MaxLen(FieldAuthors, name, 200)
	}
	for _, name := range input.Genres {
		validator.MaxLen(FieldGenres, name, 100)
	}
	validator.MaxLen(FieldPublisher, pointer.Val(input.Publisher), 200)
	validator.MaxLen(FieldCoverImage, pointer.Val(input.CoverImage), 1000)

	return validator.Err()
}

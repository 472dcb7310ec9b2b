package review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/sec"
	"github.com/novaria/api/internal/platform/validate"
)

type Service struct {
	repo      Repository
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

func (service *Service) ListReviews(ctx context.Context, filter Filter, limit, offset int) ([]*Review, int64, error) {
	return service.repo.ListReviews(ctx, filter, limit, offset)
}

func (service *Service) GetReview(ctx context.Context, id string) (*Review, error) {
	return service.repo.GetReview(ctx, id)
}

func (service *Service) CountReviews(ctx context.Context) (int64, error) {
	return service.repo.CountReviews(ctx)
}

func (service *Service) CreateReview(ctx context.Context, userID string, input *Input) (*Review, error) {
	input.Comment = service.sanitizer.Sanitize(strings.TrimSpace(input.Comment))
	if err := validateInput(input, true); err != nil {
		return nil, err
	}

	newReview := &Review{
		NovelID: input.NovelID,
		UserID:  userID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}
	if err := service.repo.CreateReview(ctx, newReview); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.String("review_id", newReview.ID),
		slog.String("novel_id", newReview.NovelID),
	)
	return newReview, nil
}

// UpdateReview modifies an existing review. Only the review's owner (or a
// moderator) may change it.
func (service *Service) UpdateReview(ctx context.Context, id, userID string, role sec.UserRole, input *Input) (*Review, error) {
	input.Comment = service.sanitizer.Sanitize(strings.TrimSpace(input.Comment))
	if err := validateInput(input, false); err != nil {
		return nil, err
	}

	existing, err := service.repo.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID && !role.AtLeast(sec.RoleModerator) {
		return nil, apperr.Forbidden("you can only modify your own reviews")
	}

	existing.Rating = input.Rating
	existing.Comment = input.Comment
	if err := service.repo.UpdateReview(ctx, existing); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated", slog.String("review_id", existing.ID))
	return existing, nil
}

// DeleteReview removes a review, subject to the same ownership rule.
func (service *Service) DeleteReview(ctx context.Context, id, userID string, role sec.UserRole) error {
	existing, err := service.repo.GetReview(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID && !role.AtLeast(sec.RoleModerator) {
		return apperr.Forbidden("you can only delete your own reviews")
	}

	if err := service.repo.DeleteReview(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("review_deleted", slog.String("review_id", id))
	return nil
}

func validateInput(input *Input, requireNovel bool) error {
	validator := validate.New()

	if requireNovel {
		validator.Required(FieldNovelID, input.NovelID).UUID(FieldNovelID, input.NovelID)
	}
	validator.Custom(FieldRating, input.Rating >= 1 && input.Rating <= 5, "must be between 1 and 5")
	validator.Required(FieldComment, input.Comment).MaxLen(FieldComment, input.Comment, 5000)

	return validator.Err()
}

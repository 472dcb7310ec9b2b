package review

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/sec"
)

type mockRepository struct {
	reviews map[string]*Review
	deleted []string
}

func newMockRepository() *mockRepository {
	return &mockRepository{reviews: make(map[string]*Review)}
}

func (m *mockRepository) ListReviews(_ context.Context, _ Filter, _, _ int) ([]*Review, int64, error) {
	return nil, 0, nil
}

func (m *mockRepository) GetReview(_ context.Context, id string) (*Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	return r, nil
}

func (m *mockRepository) CreateReview(_ context.Context, r *Review) error {
	r.ID = "r1"
	m.reviews[r.ID] = r
	return nil
}

func (m *mockRepository) UpdateReview(_ context.Context, r *Review) error {
	m.reviews[r.ID] = r
	return nil
}

func (m *mockRepository) DeleteReview(_ context.Context, id string) error {
	delete(m.reviews, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRepository) CountReviews(_ context.Context) (int64, error) { return 0, nil }

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	return NewService(repo, slog.New(slog.DiscardHandler)), repo
}

const novelID = "0195f5c8-0000-7000-8000-000000000001"

func TestCreateReviewSanitizesComment(t *testing.T) {
	service, repo := newTestService()

	created, err := service.CreateReview(context.Background(), "user-1", &Input{
		NovelID: novelID,
		Rating:  5,
		Comment: `Loved it <img src=x onerror=alert(1)> truly.`,
	})

	require.NoError(t, err)
	assert.NotContains(t, created.Comment, "<img")
	assert.Equal(t, "user-1", repo.reviews["r1"].UserID)
}

func TestCreateReviewValidation(t *testing.T) {
	testCases := []struct {
		name  string
		input Input
	}{
		{"missing novel", Input{Rating: 3, Comment: "fine"}},
		{"rating too low", Input{NovelID: novelID, Rating: 0, Comment: "fine"}},
		{"rating too high", Input{NovelID: novelID, Rating: 6, Comment: "fine"}},
		{"empty comment", Input{NovelID: novelID, Rating: 3, Comment: "  "}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, _ := newTestService()

			_, err := service.CreateReview(context.Background(), "user-1", &tc.input)

			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
		})
	}
}

func TestUpdateReviewOwnershipEnforced(t *testing.T) {
	service, repo := newTestService()
	repo.reviews["r1"] = &Review{ID: "r1", NovelID: novelID, UserID: "owner", Rating: 3, Comment: "ok"}

	_, err := service.UpdateReview(context.Background(), "r1", "intruder", sec.RoleMember, &Input{Rating: 1, Comment: "bad"})

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)
}

func TestUpdateReviewAllowsOwner(t *testing.T) {
	service, repo := newTestService()
	repo.reviews["r1"] = &Review{ID: "r1", NovelID: novelID, UserID: "owner", Rating: 3, Comment: "ok"}

	updated, err := service.UpdateReview(context.Background(), "r1", "owner", sec.RoleMember, &Input{Rating: 5, Comment: "changed my mind"})

	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
}

func TestUpdateReviewAllowsModerator(t *testing.T) {
	service, repo := newTestService()
	repo.reviews["r1"] = &Review{ID: "r1", NovelID: novelID, UserID: "owner", Rating: 3, Comment: "ok"}

	_, err := service.UpdateReview(context.Background(), "r1", "mod", sec.RoleModerator, &Input{Rating: 2, Comment: "moderated"})

	require.NoError(t, err)
}

func TestDeleteReviewOwnershipEnforced(t *testing.T) {
	service, repo := newTestService()
	repo.reviews["r1"] = &Review{ID: "r1", NovelID: novelID, UserID: "owner"}

	err := service.DeleteReview(context.Background(), "r1", "intruder", sec.RoleMember)

	require.Error(t, err)
	assert.Empty(t, repo.deleted)

	err = service.DeleteReview(context.Background(), "r1", "owner", sec.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, repo.deleted)
}

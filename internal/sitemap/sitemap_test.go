package sitemap

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novaria/api/internal/platform/apperr"
)

var mockUpdatedAt = time.Date(2026, 4, 1, 12, 30, 0, 0, time.UTC)

type mockRepository struct {
	novelTotal  int64
	reviewTotal int64

	lastNovelLimit  int
	lastNovelOffset int
}

func (m *mockRepository) CountNovels(context.Context) (int64, error)  { return m.novelTotal, nil }
func (m *mockRepository) CountReviews(context.Context) (int64, error) { return m.reviewTotal, nil }

func (m *mockRepository) ListNovelEntries(_ context.Context, limit, offset int) ([]NovelEntry, error) {
	m.lastNovelLimit = limit
	m.lastNovelOffset = offset

	count := int(m.novelTotal) - offset
	if count > limit {
		count = limit
	}
	if count <= 0 {
		return nil, nil
	}
	entries := make([]NovelEntry, count)
	for i := range entries {
		entries[i] = NovelEntry{
			ID:        fmt.Sprintf("novel-%d", offset+i),
			Title:     fmt.Sprintf("Novel %d", offset+i),
			UpdatedAt: mockUpdatedAt,
		}
	}
	return entries, nil
}

func (m *mockRepository) ListReviewEntries(_ context.Context, limit, offset int) ([]ReviewEntry, error) {
	count := int(m.reviewTotal) - offset
	if count > limit {
		count = limit
	}
	if count <= 0 {
		return nil, nil
	}
	entries := make([]ReviewEntry, count)
	for i := range entries {
		entries[i] = ReviewEntry{
			ID:        fmt.Sprintf("review-%d", offset+i),
			UpdatedAt: mockUpdatedAt,
		}
	}
	return entries, nil
}

func TestIndexSplitsLargeCataloguesIntoChunks(t *testing.T) {
	repository := &mockRepository{novelTotal: 120_000, reviewTotal: 30}
	service := NewService(repository, "https://novaria.app/")

	index, err := service.Index(context.Background())
	require.NoError(t, err)

	var locs []string
	for _, ref := range index.Sitemaps {
		locs = append(locs, ref.Loc)
	}

	assert.Equal(t, []string{
		"https://novaria.app/sitemaps/static.xml",
		"https://novaria.app/sitemaps/novels-0-49999.xml",
		"https://novaria.app/sitemaps/novels-50000-99999.xml",
		"https://novaria.app/sitemaps/novels-100000-119999.xml",
		"https://novaria.app/sitemaps/reviews-0-29.xml",
	}, locs)
}

func TestIndexWithEmptyCatalogueOnlyListsStatic(t *testing.T) {
	service := NewService(&mockRepository{}, "https://novaria.app")

	index, err := service.Index(context.Background())
	require.NoError(t, err)

	require.Len(t, index.Sitemaps, 1)
	assert.Equal(t, "https://novaria.app/sitemaps/static.xml", index.Sitemaps[0].Loc)
}

func TestPartitionStaticListsBrowsePages(t *testing.T) {
	service := NewService(&mockRepository{}, "https://novaria.app")

	urlSet, err := service.Partition(context.Background(), "static")
	require.NoError(t, err)

	require.NotEmpty(t, urlSet.URLs)
	assert.Equal(t, "https://novaria.app/", urlSet.URLs[0].Loc)
	assert.Contains(t, urlSet.URLs, URL{Loc: "https://novaria.app/search"})
}

func TestPartitionTranslatesRangeIntoQueryWindow(t *testing.T) {
	repository := &mockRepository{novelTotal: 120_000}
	service := NewService(repository, "https://novaria.app")

	urlSet, err := service.Partition(context.Background(), "novels-50000-99999")
	require.NoError(t, err)

	assert.Equal(t, 50_000, repository.lastNovelOffset)
	assert.Equal(t, 50_000, repository.lastNovelLimit)
	assert.Len(t, urlSet.URLs, 50_000)
	assert.Equal(t, "https://novaria.app/novels/novel-50000", urlSet.URLs[0].Loc)
}

func TestPartitionCarriesLastModAndTitle(t *testing.T) {
	service := NewService(&mockRepository{novelTotal: 2, reviewTotal: 1}, "https://novaria.app")

	novels, err := service.Partition(context.Background(), "novels-0-1")
	require.NoError(t, err)
	require.Len(t, novels.URLs, 2)
	assert.Equal(t, URL{
		Loc:     "https://novaria.app/novels/novel-0",
		LastMod: "2026-04-01T12:30:00Z",
		Title:   "Novel 0",
	}, novels.URLs[0])

	reviews, err := service.Partition(context.Background(), "reviews-0-0")
	require.NoError(t, err)
	require.Len(t, reviews.URLs, 1)
	assert.Equal(t, "2026-04-01T12:30:00Z", reviews.URLs[0].LastMod)
	assert.Empty(t, reviews.URLs[0].Title, "review entries carry no title")
}

func TestPartitionRejectsUnknownNames(t *testing.T) {
	service := NewService(&mockRepository{novelTotal: 10}, "https://novaria.app")

	for _, name := range []string{"authors-0-10", "novels-abc-def", "novels-10-5", "garbage", "novels-999-1050"} {
		_, err := service.Partition(context.Background(), name)
		require.Error(t, err, "partition %q", name)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code, "partition %q", name)
	}
}

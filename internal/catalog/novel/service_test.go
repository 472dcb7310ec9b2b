package novel

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novaria/api/internal/platform/apperr"
)

// mockRepository records the input it receives so tests can assert on the
// normalized payload the service hands to the store.
type mockRepository struct {
	createdInput *Input
	searchQuery  string
}

func (m *mockRepository) ListNovels(_ context.Context, _ Filter, _, _ int) ([]*Novel, int64, error) {
	return nil, 0, nil
}

func (m *mockRepository) GetNovel(_ context.Context, id string) (*Novel, error) {
	return &Novel{ID: id}, nil
}

func (m *mockRepository) CreateNovel(_ context.Context, input *Input) (*Novel, error) {
	m.createdInput = input
	return &Novel{ID: "created", Title: input.Title}, nil
}

func (m *mockRepository) UpdateNovel(_ context.Context, id string, input *Input) (*Novel, error) {
	m.createdInput = input
	return &Novel{ID: id, Title: input.Title}, nil
}

func (m *mockRepository) DeleteNovel(_ context.Context, _ string) error { return nil }

func (m *mockRepository) CountNovels(_ context.Context) (int64, error) { return 0, nil }

func (m *mockRepository) SearchNovels(_ context.Context, query string, _, _ int) ([]*Novel, int64, error) {
	m.searchQuery = query
	return nil, 0, nil
}

func newTestService() (*Service, *mockRepository) {
	repo := &mockRepository{}
	return NewService(repo, slog.New(slog.DiscardHandler)), repo
}

func validInput() *Input {
	return &Input{
		Title:       "The Long Earth",
		Description: "A multiverse story.",
		ReleaseDate: time.Date(2012, 6, 1, 0, 0, 0, 0, time.UTC),
		Rating:      4.2,
		Status:      StatusCompleted,
		Authors:     []string{"Terry Pratchett", "Stephen Baxter"},
		Genres:      []string{"Science Fiction"},
	}
}

func TestCreateNovelValidInput(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateNovel(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, "The Long Earth", created.Title)
}

func TestCreateNovelValidation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Input)
	}{
		{"missing title", func(i *Input) { i.Title = "" }},
		{"missing release date", func(i *Input) { i.ReleaseDate = time.Time{} }},
		{"rating above scale", func(i *Input) { i.Rating = 5.5 }},
		{"rating below scale", func(i *Input) { i.Rating = -1 }},
		{"unknown status", func(i *Input) { i.Status = "paused" }},
		{"no authors", func(i *Input) { i.Authors = nil }},
		{"blank authors only", func(i *Input) { i.Authors = []string{"  ", ""} }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, repo := newTestService()
			input := validInput()
			tc.mutate(input)

			_, err := service.CreateNovel(context.Background(), input)

			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
			assert.Nil(t, repo.createdInput, "invalid input must not reach the store")
		})
	}
}

func TestCreateNovelNormalizesNames(t *testing.T) {
	service, repo := newTestService()

	input := validInput()
	input.Authors = []string{" Terry Pratchett ", "Terry Pratchett", "Stephen Baxter"}
	input.Genres = []string{"Fantasy", " Fantasy "}

	_, err := service.CreateNovel(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, []string{"Terry Pratchett", "Stephen Baxter"}, repo.createdInput.Authors)
	assert.Equal(t, []string{"Fantasy"}, repo.createdInput.Genres)
}

func TestCreateNovelStripsMarkupFromDescription(t *testing.T) {
	service, repo := newTestService()

	input := validInput()
	input.Description = `An epic <script>alert("xss")</script>tale.`

	_, err := service.CreateNovel(context.Background(), input)

	require.NoError(t, err)
	assert.NotContains(t, repo.createdInput.Description, "<script>")
	assert.Contains(t, repo.createdInput.Description, "tale.")
}

func TestCreateNovelDropsBlankPublisher(t *testing.T) {
	service, repo := newTestService()

	input := validInput()
	blank := "   "
	input.Publisher = &blank

	_, err := service.CreateNovel(context.Background(), input)

	require.NoError(t, err)
	assert.Nil(t, repo.createdInput.Publisher)
}

func TestSearchNovelsFoldsQuery(t *testing.T) {
	service, repo := newTestService()

	_, _, err := service.SearchNovels(context.Background(), "  Émile Zola ", 20, 0)

	require.NoError(t, err)
	assert.Equal(t, "emile zola", repo.searchQuery)
}

// Accented and plain spellings must reach the store as the same pattern; the
// store folds the column side with unaccent, so a query exactly equal to an
// accented stored name still matches.
func TestSearchNovelsAccentedAndPlainQueriesConverge(t *testing.T) {
	service, repo := newTestService()

	_, _, err := service.SearchNovels(context.Background(), "Émile Zola", 20, 0)
	require.NoError(t, err)
	accented := repo.searchQuery

	_, _, err = service.SearchNovels(context.Background(), "emile zola", 20, 0)
	require.NoError(t, err)

	assert.Equal(t, accented, repo.searchQuery)
}

func TestSearchNovelsRejectsEmptyQuery(t *testing.T) {
	service, _ := newTestService()

	_, _, err := service.SearchNovels(context.Background(), "   ", 20, 0)

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

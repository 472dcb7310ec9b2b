package sitemap

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novaria/api/internal/platform/dberr"
)

// PostgresRepository reads row streams for sitemap generation. UUIDv7 primary
// keys are time-ordered, so sorting by id gives a stable pagination order
// without an extra index.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) CountNovels(ctx context.Context) (int64, error) {
	var total int64
	err := repository.db.QueryRow(ctx, `SELECT COUNT(*) FROM catalog.novels`).Scan(&total)
	return total, dberr.Wrap(err, "Novel")
}

func (repository *PostgresRepository) ListNovelEntries(ctx context.Context, limit, offset int) ([]NovelEntry, error) {
	rows, err := repository.db.Query(ctx,
		`SELECT id, title, updated_at FROM catalog.novels ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "Novel")
	}
	defer rows.Close()

	var entries []NovelEntry
	for rows.Next() {
		var entry NovelEntry
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "Novel")
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (repository *PostgresRepository) CountReviews(ctx context.Context) (int64, error) {
	var total int64
	err := repository.db.QueryRow(ctx, `SELECT COUNT(*) FROM social.reviews`).Scan(&total)
	return total, dberr.Wrap(err, "Review")
}

func (repository *PostgresRepository) ListReviewEntries(ctx context.Context, limit, offset int) ([]ReviewEntry, error) {
	rows, err := repository.db.Query(ctx,
		`SELECT id, updated_at FROM social.reviews ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "Review")
	}
	defer rows.Close()

	var entries []ReviewEntry
	for rows.Next() {
		var entry ReviewEntry
		if err := rows.Scan(&entry.ID, &entry.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "Review")
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

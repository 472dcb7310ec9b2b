package review

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/dberr"
	"github.com/novaria/api/pkg/uuid"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListReviews(ctx context.Context, f Filter, limit, offset int) ([]*Review, int64, error) {
	query := `
		SELECT r.id, r.novel_id, r.user_id, u.username, r.rating, r.comment,
		       r.created_at, r.updated_at,
		       COUNT(*) OVER() AS total
		FROM social.reviews r
		JOIN users.accounts u ON u.id = r.user_id
		WHERE ($1 = '' OR r.novel_id::text = $1)
		  AND ($2 = '' OR r.user_id::text = $2)
		ORDER BY r.created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := repository.db.Query(ctx, query, f.NovelID, f.UserID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Review")
	}
	defer rows.Close()

	var (
		reviews []*Review
		total   int64
	)
	for rows.Next() {
		r := &Review{}
		if err := rows.Scan(&r.ID, &r.NovelID, &r.UserID, &r.Username, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, rows.Err()
}

func (repository *PostgresRepository) GetReview(ctx context.Context, id string) (*Review, error) {
	query := `
		SELECT r.id, r.novel_id, r.user_id, u.username, r.rating, r.comment,
		       r.created_at, r.updated_at
		FROM social.reviews r
		JOIN users.accounts u ON u.id = r.user_id
		WHERE r.id = $1
	`

	r := &Review{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&r.ID, &r.NovelID, &r.UserID, &r.Username, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Review")
	}

	return r, nil
}

func (repository *PostgresRepository) CreateReview(ctx context.Context, r *Review) error {
	query := `
		INSERT INTO social.reviews (id, novel_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	r.ID = uuid.NewV7()
	err := repository.db.QueryRow(ctx, query, r.ID, r.NovelID, r.UserID, r.Rating, r.Comment).Scan(&r.CreatedAt, &r.UpdatedAt)
	return dberr.Wrap(err, "Review")
}

func (repository *PostgresRepository) UpdateReview(ctx context.Context, r *Review) error {
	query := `
		UPDATE social.reviews
		SET rating = $2, comment = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := repository.db.QueryRow(ctx, query, r.ID, r.Rating, r.Comment).Scan(&r.UpdatedAt)
	return dberr.Wrap(err, "Review")
}

func (repository *PostgresRepository) DeleteReview(ctx context.Context, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM social.reviews WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Review")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func (repository *PostgresRepository) CountReviews(ctx context.Context) (int64, error) {
	var total int64
	err := repository.db.QueryRow(ctx, `SELECT COUNT(*) FROM social.reviews`).Scan(&total)
	if err != nil {
		return 0, dberr.Wrap(err, "Review")
	}
	return total, nil
}

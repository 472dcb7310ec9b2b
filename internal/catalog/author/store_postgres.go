package author

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

func (repository *PostgresRepository) ListAuthors(ctx context.Context, f Filter, limit, offset int) ([]*Author, int64, error) {
	query := `
		SELECT id, name, bio, website, created_at, updated_at,
		       COUNT(*) OVER() AS total
		FROM catalog.authors
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(ctx, query, f.Query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Author")
	}
	defer rows.Close()

	var (
		authors []*Author
		total   int64
	)
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio, &a.Website, &a.CreatedAt, &a.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Author")
		}
		authors = append(authors, a)
	}

	return authors, total, rows.Err()
}

func (repository *PostgresRepository) GetAuthor(ctx context.Context, id string) (*Author, error) {
	query := `
		SELECT id, name, bio, website, created_at, updated_at
		FROM catalog.authors
		WHERE id = $1
	`

	a := &Author{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Bio, &a.Website, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Author")
	}

	return a, nil
}

func (repository *PostgresRepository) CreateAuthor(ctx context.Context, a *Author) error {
	query := `
		INSERT INTO catalog.authors (id, name, bio, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	a.ID = uuid.NewV7()
	err := repository.db.QueryRow(ctx, query, a.ID, a.Name, a.Bio, a.Website).Scan(&a.CreatedAt, &a.UpdatedAt)
	return dberr.Wrap(err, "Author")
}

func (repository *PostgresRepository) UpdateAuthor(ctx context.Context, a *Author) error {
	query := `
		UPDATE catalog.authors
		SET name = $2, bio = $3, website = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := repository.db.QueryRow(ctx, query, a.ID, a.Name, a.Bio, a.Website).Scan(&a.UpdatedAt)
	return dberr.Wrap(err, "Author")
}

func (repository *PostgresRepository) DeleteAuthor(ctx context.Context, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM catalog.authors WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Author")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Author")
	}
	return nil
}

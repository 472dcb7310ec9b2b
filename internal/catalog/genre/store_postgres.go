package genre

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

func (repository *PostgresRepository) ListGenres(ctx context.Context, limit, offset int) ([]*Genre, int64, error) {
	query := `
		SELECT id, name, created_at, updated_at,
		       COUNT(*) OVER() AS total
		FROM catalog.genres
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := repository.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Genre")
	}
	defer rows.Close()

	var (
		genres []*Genre
		total  int64
	)
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Genre")
		}
		genres = append(genres, g)
	}

	return genres, total, rows.Err()
}

func (repository *PostgresRepository) GetGenre(ctx context.Context, id string) (*Genre, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM catalog.genres
		WHERE id = $1
	`

	g := &Genre{}
	err := repository.db.QueryRow(ctx, query, id).Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "Genre")
	}

	return g, nil
}

func (repository *PostgresRepository) CreateGenre(ctx context.Context, g *Genre) error {
	query := `
		INSERT INTO catalog.genres (id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	g.ID = uuid.NewV7()
	err := repository.db.QueryRow(ctx, query, g.ID, g.Name).Scan(&g.CreatedAt, &g.UpdatedAt)
	return dberr.Wrap(err, "Genre")
}

func (repository *PostgresRepository) UpdateGenre(ctx context.Context, g *Genre) error {
	query := `
		UPDATE catalog.genres
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := repository.db.QueryRow(ctx, query, g.ID, g.Name).Scan(&g.UpdatedAt)
	return dberr.Wrap(err, "Genre")
}

func (repository *PostgresRepository) DeleteGenre(ctx context.Context, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM catalog.genres WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Genre")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}
	return nil
}

package publisher

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

func (repository *PostgresRepository) ListPublishers(ctx context.Context, f Filter, limit, offset int) ([]*Publisher, int64, error) {
	query := `
		SELECT id, name, location, website, created_at, updated_at,
		       COUNT(*) OVER() AS total
		FROM catalog.publishers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(ctx, query, f.Query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Publisher")
	}
	defer rows.Close()

	var (
		publishers []*Publisher
		total      int64
	)
	for rows.Next() {
		p := &Publisher{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.Website, &p.CreatedAt, &p.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Publisher")
		}
		publishers = append(publishers, p)
	}

	return publishers, total, rows.Err()
}

func (repository *PostgresRepository) GetPublisher(ctx context.Context, id string) (*Publisher, error) {
	query := `
		SELECT id, name, location, website, created_at, updated_at
		FROM catalog.publishers
		WHERE id = $1
	`

	p := &Publisher{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Location, &p.Website, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Publisher")
	}

	return p, nil
}

func (repository *PostgresRepository) CreatePublisher(ctx context.Context, p *Publisher) error {
	query := `
		INSERT INTO catalog.publishers (id, name, location, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	p.ID = uuid.NewV7()
	err := repository.db.QueryRow(ctx, query, p.ID, p.Name, p.Location, p.Website).Scan(&p.CreatedAt, &p.UpdatedAt)
	return dberr.Wrap(err, "Publisher")
}

func (repository *PostgresRepository) UpdatePublisher(ctx context.Context, p *Publisher) error {
	query := `
		UPDATE catalog.publishers
		SET name = $2, location = $3, website = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := repository.db.QueryRow(ctx, query, p.ID, p.Name, p.Location, p.Website).Scan(&p.UpdatedAt)
	return dberr.Wrap(err, "Publisher")
}

func (repository *PostgresRepository) DeletePublisher(ctx context.Context, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM catalog.publishers WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Publisher")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Publisher")
	}
	return nil
}

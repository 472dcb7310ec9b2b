package character

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

func (repository *PostgresRepository) ListCharacters(ctx context.Context, f Filter, limit, offset int) ([]*Character, int64, error) {
	query := `
		SELECT id, novel_id, name, description, created_at, updated_at,
		       COUNT(*) OVER() AS total
		FROM catalog.characters
		WHERE ($1 = '' OR novel_id::text = $1)
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(ctx, query, f.NovelID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Character")
	}
	defer rows.Close()

	var (
		characters []*Character
		total      int64
	)
	for rows.Next() {
		c := &Character{}
		if err := rows.Scan(&c.ID, &c.NovelID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Character")
		}
		characters = append(characters, c)
	}

	return characters, total, rows.Err()
}

func (repository *PostgresRepository) GetCharacter(ctx context.Context, id string) (*Character, error) {
	query := `
		SELECT id, novel_id, name, description, created_at, updated_at
		FROM catalog.characters
		WHERE id = $1
	`

	c := &Character{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.NovelID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Character")
	}

	return c, nil
}

func (repository *PostgresRepository) CreateCharacter(ctx context.Context, c *Character) error {
	query := `
		INSERT INTO catalog.characters (id, novel_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	c.ID = uuid.NewV7()
	err := repository.db.QueryRow(ctx, query, c.ID, c.NovelID, c.Name, c.Description).Scan(&c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "Character")
}

func (repository *PostgresRepository) UpdateCharacter(ctx context.Context, c *Character) error {
	query := `
		UPDATE catalog.characters
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING novel_id, updated_at
	`

	err := repository.db.QueryRow(ctx, query, c.ID, c.Name, c.Description).Scan(&c.NovelID, &c.UpdatedAt)
	return dberr.Wrap(err, "Character")
}

func (repository *PostgresRepository) DeleteCharacter(ctx context.Context, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM catalog.characters WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Character")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Character")
	}
	return nil
}

package chapter

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

// # Volumes

func (repository *PostgresRepository) ListVolumes(ctx context.Context, f VolumeFilter, limit, offset int) ([]*Volume, int64, error) {
	query := `
		SELECT id, novel_id, number, release_date, created_at, updated_at,
		       COUNT(*) OVER() AS total
		FROM catalog.volumes
		WHERE ($1 = '' OR novel_id::text = $1)
		ORDER BY number ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(ctx, query, f.NovelID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Volume")
	}
	defer rows.Close()

	var (
		volumes []*Volume
		total   int64
	)
	for rows.Next() {
		v := &Volume{}
		if err := rows.Scan(&v.ID, &v.NovelID, &v.Number, &v.ReleaseDate, &v.CreatedAt, &v.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Volume")
		}
		volumes = append(volumes, v)
	}

	return volumes, total, rows.Err()
}

func (repository *PostgresRepository) GetVolume(ctx context.Context, id string) (*Volume, error) {
	query := `
		SELECT id, novel_id, number, release_date, created_at, updated_at
		FROM catalog.volumes
		WHERE id = $1
	`

	v := &Volume{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.NovelID, &v.Number, &v.ReleaseDate, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Volume")
	}

	return v, nil
}

func (repository *PostgresRepository) CreateVolume(ctx context.Context, v *Volume) error {
	query := `
		INSERT INTO catalog.volumes (id, novel_id, number, release_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	v.ID = uuid.NewV7()
	err := repository.db.QueryRow(ctx, query, v.ID, v.NovelID, v.Number, v.ReleaseDate).Scan(&v.CreatedAt, &v.UpdatedAt)
	return dberr.Wrap(err, "Volume")
}

func (repository *PostgresRepository) UpdateVolume(ctx context.Context, v *Volume) error {
	query := `
		UPDATE catalog.volumes
		SET number = $2, release_date = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING novel_id, updated_at
	`

	err := repository.db.QueryRow(ctx, query, v.ID, v.Number, v.ReleaseDate).Scan(&v.NovelID, &v.UpdatedAt)
	return dberr.Wrap(err, "Volume")
}

func (repository *PostgresRepository) DeleteVolume(ctx context.Context, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM catalog.volumes WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Volume")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Volume")
	}
	return nil
}

// # Chapters

func (repository *PostgresRepository) ListChapters(ctx context.Context, f ChapterFilter, limit, offset int) ([]*Chapter, int64, error) {
	query := `
		SELECT id, volume_id, title, number, release_date, created_at, updated_at,
		       COUNT(*) OVER() AS total
		FROM catalog.chapters
		WHERE ($1 = '' OR volume_id::text = $1)
		ORDER BY number ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(ctx, query, f.VolumeID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Chapter")
	}
	defer rows.Close()

	var (
		chapters []*Chapter
		total    int64
	)
	for rows.Next() {
		c := &Chapter{}
		if err := rows.Scan(&c.ID, &c.VolumeID, &c.Title, &c.Number, &c.ReleaseDate, &c.CreatedAt, &c.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Chapter")
		}
		chapters = append(chapters, c)
	}

	return chapters, total, rows.Err()
}

func (repository *PostgresRepository) GetChapter(ctx context.Context, id string) (*Chapter, error) {
	query := `
		SELECT id, volume_id, title, number, release_date, created_at, updated_at
		FROM catalog.chapters
		WHERE id = $1
	`

	c := &Chapter{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.VolumeID, &c.Title, &c.Number, &c.ReleaseDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter")
	}

	return c, nil
}

func (repository *PostgresRepository) CreateChapter(ctx context.Context, c *Chapter) error {
	query := `
		INSERT INTO catalog.chapters (id, volume_id, title, number, release_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	c.ID = uuid.NewV7()
	err := repository.db.QueryRow(ctx, query, c.ID, c.VolumeID, c.Title, c.Number, c.ReleaseDate).Scan(&c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "Chapter")
}

func (repository *PostgresRepository) UpdateChapter(ctx context.Context, c *Chapter) error {
	query := `
		UPDATE catalog.chapters
		SET title = $2, number = $3, release_date = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING volume_id, updated_at
	`

	err := repository.db.QueryRow(ctx, query, c.ID, c.Title, c.Number, c.ReleaseDate).Scan(&c.VolumeID, &c.UpdatedAt)
	return dberr.Wrap(err, "Chapter")
}

func (repository *PostgresRepository) DeleteChapter(ctx context.Context, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM catalog.chapters WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Chapter")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}
	return nil
}

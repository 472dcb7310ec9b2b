/*
Package novel provides the PostgreSQL implementation for the catalogue's core aggregate.

It leans on Postgres features to keep the read path to a single round-trip:
  - JSON Aggregation: authors and genres are folded into JSON arrays per row.
  - Window Functions: COUNT(*) OVER() returns totals without a second query.
  - ACID Transactions: novels and their junction rows change atomically.

Referenced authors, publishers, and genres are resolved BY NAME inside the
write transaction: an INSERT ... ON CONFLICT upsert either creates the row or
returns the existing ID, so concurrent writers referencing the same new name
cannot race each other into duplicates.
*/
package novel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
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

// novelColumns is the shared SELECT list: the novel row plus its publisher
// and the JSON-aggregated author and genre references.
const novelColumns = `
	n.id, n.title, n.description, n.release_date, n.cover_image, n.rating, n.status,
	n.created_at, n.updated_at,
	p.id, p.name,
	COALESCE((
		SELECT json_agg(json_build_object('id', a.id, 'name', a.name) ORDER BY a.name)
		FROM catalog.authors a
		JOIN catalog.novel_authors na ON na.author_id = a.id
		WHERE na.novel_id = n.id
	), '[]') AS authors,
	COALESCE((
		SELECT json_agg(json_build_object('id', g.id, 'name', g.name) ORDER BY g.name)
		FROM catalog.genres g
		JOIN catalog.novel_genres ng ON ng.genre_id = g.id
		WHERE ng.novel_id = n.id
	), '[]') AS genres
`

// scanNovel reads one row produced by a novelColumns query. extra receives
// any trailing columns (e.g. the window-function total).
func scanNovel(row pgx.Row, extra ...any) (*Novel, error) {
	n := &Novel{}
	var (
		publisherID   *string
		publisherName *string
		authorsJSON   []byte
		genresJSON    []byte
	)

	dest := []any{
		&n.ID, &n.Title, &n.Description, &n.ReleaseDate, &n.CoverImage, &n.Rating, &n.Status,
		&n.CreatedAt, &n.UpdatedAt,
		&publisherID, &publisherName,
		&authorsJSON, &genresJSON,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if publisherID != nil && publisherName != nil {
		n.Publisher = &NameRef{ID: *publisherID, Name: *publisherName}
	}
	if err := json.Unmarshal(authorsJSON, &n.Authors); err != nil {
		return nil, fmt.Errorf("postgres: decode authors: %w", err)
	}
	if err := json.Unmarshal(genresJSON, &n.Genres); err != nil {
		return nil, fmt.Errorf("postgres: decode genres: %w", err)
	}

	return n, nil
}

func (repository *PostgresRepository) ListNovels(ctx context.Context, f Filter, limit, offset int) ([]*Novel, int64, error) {
	query := `
		SELECT ` + novelColumns + `,
		       COUNT(*) OVER() AS total
		FROM catalog.novels n
		LEFT JOIN catalog.publishers p ON p.id = n.publisher_id
		WHERE ($1 = '' OR n.status = $1)
		  AND ($2 = '' OR EXISTS (
		      SELECT 1 FROM catalog.novel_genres ng
		      WHERE ng.novel_id = n.id AND ng.genre_id::text = $2
		  ))
		ORDER BY n.title ASC
		LIMIT $3 OFFSET $4
	`

	rows, err := repository.db.Query(ctx, query, f.Status, f.GenreID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Novel")
	}
	defer rows.Close()

	var (
		novels []*Novel
		total  int64
	)
	for rows.Next() {
		n, err := scanNovel(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Novel")
		}
		novels = append(novels, n)
	}

	return novels, total, rows.Err()
}

func (repository *PostgresRepository) GetNovel(ctx context.Context, id string) (*Novel, error) {
	query := `
		SELECT ` + novelColumns + `
		FROM catalog.novels n
		LEFT JOIN catalog.publishers p ON p.id = n.publisher_id
		WHERE n.id = $1
	`

	n, err := scanNovel(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Novel")
	}
	return n, nil
}

func (repository *PostgresRepository) CountNovels(ctx context.Context) (int64, error) {
	var total int64
	err := repository.db.QueryRow(ctx, `SELECT COUNT(*) FROM catalog.novels`).Scan(&total)
	if err != nil {
		return 0, dberr.Wrap(err, "Novel")
	}
	return total, nil
}

// SearchNovels matches the already-folded query against titles, author names,
// and genre names. The column side is folded the same way: unaccent strips
// diacritics and ILIKE keeps matching case-insensitive, so "emile zola" and
// "Émile Zola" both find the accented stored name.
func (repository *PostgresRepository) SearchNovels(ctx context.Context, query string, limit, offset int) ([]*Novel, int64, error) {
	searchQuery := `
		SELECT ` + novelColumns + `,
		       COUNT(*) OVER() AS total
		FROM catalog.novels n
		LEFT JOIN catalog.publishers p ON p.id = n.publisher_id
		WHERE unaccent(n.title) ILIKE '%' || $1 || '%'
		   OR EXISTS (
		       SELECT 1 FROM catalog.authors a
		       JOIN catalog.novel_authors na ON na.author_id = a.id
		       WHERE na.novel_id = n.id AND unaccent(a.name) ILIKE '%' || $1 || '%'
		   )
		   OR EXISTS (
		       SELECT 1 FROM catalog.genres g
		       JOIN catalog.novel_genres ng ON ng.genre_id = g.id
		       WHERE ng.novel_id = n.id AND unaccent(g.name) ILIKE '%' || $1 || '%'
		   )
		ORDER BY n.title ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(ctx, searchQuery, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Novel")
	}
	defer rows.Close()

	var (
		novels []*Novel
		total  int64
	)
	for rows.Next() {
		n, err := scanNovel(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Novel")
		}
		novels = append(novels, n)
	}

	return novels, total, rows.Err()
}

func (repository *PostgresRepository) CreateNovel(ctx context.Context, input *Input) (*Novel, error) {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "Novel")
	}
	defer transaction.Rollback(ctx)

	novelID := uuid.NewV7()

	publisherID, err := repository.resolvePublisher(ctx, transaction, input.Publisher)
	if err != nil {
		return nil, err
	}

	insertQuery := `
		INSERT INTO catalog.novels (id, title, description, release_date, cover_image, rating, status, publisher_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err = transaction.Exec(ctx, insertQuery,
		novelID, input.Title, input.Description, input.ReleaseDate,
		input.CoverImage, input.Rating, input.Status, publisherID,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Novel")
	}

	if err := repository.syncNameJunctions(ctx, transaction, novelID, input); err != nil {
		return nil, err
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "Novel")
	}

	return repository.GetNovel(ctx, novelID)
}

func (repository *PostgresRepository) UpdateNovel(ctx context.Context, id string, input *Input) (*Novel, error) {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "Novel")
	}
	defer transaction.Rollback(ctx)

	publisherID, err := repository.resolvePublisher(ctx, transaction, input.Publisher)
	if err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE catalog.novels
		SET title = $2, description = $3, release_date = $4, cover_image = $5,
		    rating = $6, status = $7, publisher_id = $8, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := transaction.Exec(ctx, updateQuery,
		id, input.Title, input.Description, input.ReleaseDate,
		input.CoverImage, input.Rating, input.Status, publisherID,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Novel")
	}
	if cmd.RowsAffected() == 0 {
		return nil, apperr.NotFound("Novel")
	}

	if err := repository.syncNameJunctions(ctx, transaction, id, input); err != nil {
		return nil, err
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "Novel")
	}

	return repository.GetNovel(ctx, id)
}

func (repository *PostgresRepository) DeleteNovel(ctx context.Context, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM catalog.novels WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Novel")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Novel")
	}
	return nil
}

// # Name Resolution

// upsertByName finds or creates a named row and returns its ID.
//
// ON CONFLICT ... DO UPDATE (rather than DO NOTHING) forces the statement to
// always return a row, making find-or-create a single atomic statement.
func upsertByName(ctx context.Context, transaction pgx.Tx, table, name string) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, table)

	var id string
	err := transaction.QueryRow(ctx, query, uuid.NewV7(), name).Scan(&id)
	if err != nil {
		return "", dberr.Wrap(err, "Novel")
	}
	return id, nil
}

func (repository *PostgresRepository) resolvePublisher(ctx context.Context, transaction pgx.Tx, name *string) (*string, error) {
	if name == nil {
		return nil, nil
	}

	id, err := upsertByName(ctx, transaction, "catalog.publishers", *name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// syncNameJunctions resolves author and genre names to IDs and replaces the
// novel's junction rows with the new set.
func (repository *PostgresRepository) syncNameJunctions(ctx context.Context, transaction pgx.Tx, novelID string, input *Input) error {
	authorIDs := make([]string, 0, len(input.Authors))
	for _, name := range input.Authors {
		id, err := upsertByName(ctx, transaction, "catalog.authors", name)
		if err != nil {
			return err
		}
		authorIDs = append(authorIDs, id)
	}

	genreIDs := make([]string, 0, len(input.Genres))
	for _, name := range input.Genres {
		id, err := upsertByName(ctx, transaction, "catalog.genres", name)
		if err != nil {
			return err
		}
		genreIDs = append(genreIDs, id)
	}

	if err := replaceJunction(ctx, transaction, "catalog.novel_authors", "novel_id", "author_id", novelID, authorIDs); err != nil {
		return err
	}
	return replaceJunction(ctx, transaction, "catalog.novel_genres", "novel_id", "genre_id", novelID, genreIDs)
}

// replaceJunction clears the junction rows for one novel and batch-inserts
// the new associations in a single network round-trip.
func replaceJunction(ctx context.Context, transaction pgx.Tx, table, idCol, valCol, id string, values []string) error {
	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, idCol)
	if _, err := transaction.Exec(ctx, deleteQuery, id); err != nil {
		return dberr.Wrap(err, "Novel")
	}

	if len(values) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", table, idCol, valCol)
	batch := &pgx.Batch{}
	for _, value := range values {
		batch.Queue(insertQuery, id, value)
	}

	response := transaction.SendBatch(ctx, batch)
	if err := response.Close(); err != nil {
		return dberr.Wrap(err, "Novel")
	}
	return nil
}

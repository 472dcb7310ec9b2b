package library

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/dberr"
	"github.com/novaria/api/pkg/uuid"
)

// PostgresRepository persists the per-user library collections. Every delete
// and update is additionally keyed by user_id so one user can never touch
// another user's rows, even with a guessed entry ID.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Favorites

func (repository *PostgresRepository) ListFavorites(ctx context.Context, userID string, limit, offset int) ([]*Favorite, int64, error) {
	query := `
		SELECT id, user_id, novel_id, created_at,
		       COUNT(*) OVER() AS total
		FROM social.favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Favorite")
	}
	defer rows.Close()

	var (
		favorites []*Favorite
		total     int64
	)
	for rows.Next() {
		f := &Favorite{}
		if err := rows.Scan(&f.ID, &f.UserID, &f.NovelID, &f.CreatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Favorite")
		}
		favorites = append(favorites, f)
	}

	return favorites, total, rows.Err()
}

func (repository *PostgresRepository) CreateFavorite(ctx context.Context, f *Favorite) error {
	query := `
		INSERT INTO social.favorites (id, user_id, novel_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`

	f.ID = uuid.NewV7()
	err := repository.db.QueryRow(ctx, query, f.ID, f.UserID, f.NovelID).Scan(&f.CreatedAt)
	return dberr.Wrap(err, "Favorite")
}

func (repository *PostgresRepository) DeleteFavorite(ctx context.Context, userID, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM social.favorites WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return dberr.Wrap(err, "Favorite")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Favorite")
	}
	return nil
}

// # Follows

func (repository *PostgresRepository) ListFollows(ctx context.Context, userID string, limit, offset int) ([]*Follow, int64, error) {
	query := `
		SELECT id, user_id, author_id, novel_id, created_at,
		       COUNT(*) OVER() AS total
		FROM social.follows
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Follow")
	}
	defer rows.Close()

	var (
		follows []*Follow
		total   int64
	)
	for rows.Next() {
		f := &Follow{}
		if err := rows.Scan(&f.ID, &f.UserID, &f.AuthorID, &f.NovelID, &f.CreatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Follow")
		}
		follows = append(follows, f)
	}

	return follows, total, rows.Err()
}

func (repository *PostgresRepository) CreateFollow(ctx context.Context, f *Follow) error {
	query := `
		INSERT INTO social.follows (id, user_id, author_id, novel_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	f.ID = uuid.NewV7()
	err := repository.db.QueryRow(ctx, query, f.ID, f.UserID, f.AuthorID, f.NovelID).Scan(&f.CreatedAt)
	return dberr.Wrap(err, "Follow")
}

func (repository *PostgresRepository) DeleteFollow(ctx context.Context, userID, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM social.follows WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return dberr.Wrap(err, "Follow")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Follow")
	}
	return nil
}

// # MyList

func (repository *PostgresRepository) ListMyList(ctx context.Context, userID, collection string, limit, offset int) ([]*MyListEntry, int64, error) {
	query := `
		SELECT id, user_id, novel_id, collection_name, created_at,
		       COUNT(*) OVER() AS total
		FROM social.mylist_entries
		WHERE user_id = $1
		  AND ($2 = '' OR collection_name = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := repository.db.Query(ctx, query, userID, collection, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "MyList entry")
	}
	defer rows.Close()

	var (
		entries []*MyListEntry
		total   int64
	)
	for rows.Next() {
		e := &MyListEntry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.NovelID, &e.CollectionName, &e.CreatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "MyList entry")
		}
		entries = append(entries, e)
	}

	return entries, total, rows.Err()
}

func (repository *PostgresRepository) CreateMyListEntry(ctx context.Context, e *MyListEntry) error {
	query := `
		INSERT INTO social.mylist_entries (id, user_id, novel_id, collection_name, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	e.ID = uuid.NewV7()
	err := repository.db.QueryRow(ctx, query, e.ID, e.UserID, e.NovelID, e.CollectionName).Scan(&e.CreatedAt)
	return dberr.Wrap(err, "MyList entry")
}

func (repository *PostgresRepository) UpdateMyListEntry(ctx context.Context, e *MyListEntry) error {
	query := `
		UPDATE social.mylist_entries
		SET collection_name = $3
		WHERE id = $1 AND user_id = $2
		RETURNING novel_id, created_at
	`

	err := repository.db.QueryRow(ctx, query, e.ID, e.UserID, e.CollectionName).Scan(&e.NovelID, &e.CreatedAt)
	return dberr.Wrap(err, "MyList entry")
}

func (repository *PostgresRepository) DeleteMyListEntry(ctx context.Context, userID, id string) error {
	cmd, err := repository.db.Exec(ctx, `DELETE FROM social.mylist_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return dberr.Wrap(err, "MyList entry")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("MyList entry")
	}
	return nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noteplus/noteplus-api/internal/domain/entity"
	"github.com/noteplus/noteplus-api/internal/domain/repository"
)

// NoteRepository stores active notes in the notes table and soft-deleted ones
// in bin_notes. The two tables share a shape; lifecycle transitions copy a row
// from one to the other and delete the source inside a single transaction, so
// a note never exists in both at once.
type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

const noteColumns = `id, owner, title, description, tag, pinned, created_at`

func scanNote(row pgx.Row, n *entity.Note) error {
	return row.Scan(&n.ID, &n.Owner, &n.Title, &n.Description, &n.Tag, &n.Pinned, &n.CreatedAt)
}

func (r *NoteRepository) Insert(ctx context.Context, n *entity.Note) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notes (owner, title, description, tag, pinned)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tag, pinned, created_at
	`, n.Owner, n.Title, n.Description, n.Tag, n.Pinned)

	return row.Scan(&n.ID, &n.Tag, &n.Pinned, &n.CreatedAt)
}

func (r *NoteRepository) GetActive(ctx context.Context, id string) (*entity.Note, error) {
	return r.getFrom(ctx, "notes", id)
}

func (r *NoteRepository) GetBinned(ctx context.Context, id string) (*entity.Note, error) {
	return r.getFrom(ctx, "bin_notes", id)
}

func (r *NoteRepository) getFrom(ctx context.Context, table, id string) (*entity.Note, error) {
	n := &entity.Note{}
	row := r.pool.QueryRow(ctx, `SELECT `+noteColumns+` FROM `+table+` WHERE id = $1`, id)
	if err := scanNote(row, n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoRecord
		}
		return nil, err
	}
	return n, nil
}

func (r *NoteRepository) ListActiveByOwner(ctx context.Context, owner string) ([]entity.Note, error) {
	return r.listFrom(ctx, "notes", owner)
}

func (r *NoteRepository) ListBinnedByOwner(ctx context.Context, owner string) ([]entity.Note, error) {
	return r.listFrom(ctx, "bin_notes", owner)
}

func (r *NoteRepository) listFrom(ctx context.Context, table, owner string) ([]entity.Note, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+noteColumns+` FROM `+table+` WHERE owner = $1`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []entity.Note{}
	for rows.Next() {
		var n entity.Note
		if err := scanNote(rows, &n); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *NoteRepository) Update(ctx context.Context, n *entity.Note) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE notes
		SET title = $1, description = $2, tag = $3, pinned = $4
		WHERE id = $5
	`, n.Title, n.Description, n.Tag, n.Pinned, n.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNoRecord
	}
	return nil
}

func (r *NoteRepository) MoveToBin(ctx context.Context, id string) (*entity.Note, error) {
	return r.move(ctx, "notes", "bin_notes", id)
}

func (r *NoteRepository) RestoreFromBin(ctx context.Context, id string) (*entity.Note, error) {
	return r.move(ctx, "bin_notes", "notes", id)
}

// move copies the row into the destination table, inheriting every field but
// the id, then deletes the source row. Both statements run in one transaction.
func (r *NoteRepository) move(ctx context.Context, from, to, id string) (*entity.Note, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	n := &entity.Note{}
	row := tx.QueryRow(ctx, `
		INSERT INTO `+to+` (owner, title, description, tag, pinned, created_at)
		SELECT owner, title, description, tag, pinned, created_at FROM `+from+` WHERE id = $1
		RETURNING `+noteColumns,
		id)
	if err := scanNote(row, n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoRecord
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM `+from+` WHERE id = $1`, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NoteRepository) DeleteFromBin(ctx context.Context, id string) (*entity.Note, error) {
	n := &entity.Note{}
	row := r.pool.QueryRow(ctx, `DELETE FROM bin_notes WHERE id = $1 RETURNING `+noteColumns, id)
	if err := scanNote(row, n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoRecord
		}
		return nil, err
	}
	return n, nil
}

var _ repository.NoteRepository = (*NoteRepository)(nil)

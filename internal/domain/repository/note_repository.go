package repository

import (
	"context"
	"errors"

	"github.com/noteplus/noteplus-api/internal/domain/entity"
)

// ErrNoRecord is returned by repositories when no row matches the given id.
var ErrNoRecord = errors.New("record not found")

// NoteRepository covers both stores of the note lifecycle: the active table
// and the bin. MoveToBin and RestoreFromBin perform the copy-then-delete
// transition atomically and return the destination copy, which carries a
// fresh id but inherits every other field from the source.
type NoteRepository interface {
	Insert(ctx context.Context, n *entity.Note) error
	GetActive(ctx context.Context, id string) (*entity.Note, error)
	GetBinned(ctx context.Context, id string) (*entity.Note, error)
	ListActiveByOwner(ctx context.Context, owner string) ([]entity.Note, error)
	ListBinnedByOwner(ctx context.Context, owner string) ([]entity.Note, error)
	Update(ctx context.Context, n *entity.Note) error
	MoveToBin(ctx context.Context, id string) (*entity.Note, error)
	RestoreFromBin(ctx context.Context, id string) (*entity.Note, error)
	DeleteFromBin(ctx context.Context, id string) (*entity.Note, error)
}

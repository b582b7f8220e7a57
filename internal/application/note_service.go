package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/noteplus/noteplus-api/internal/domain/entity"
	repo "github.com/noteplus/noteplus-api/internal/domain/repository"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	// ErrNotOwner means the caller is authenticated but does not own the note.
	ErrNotOwner = errors.New("not allowed")
)

const defaultTag = "General"

// NoteService owns the note lifecycle: active -> bin -> restored or purged.
// Every mutation fetches the record first and rejects owner mismatches before
// touching anything.
type NoteService struct {
	Repo   repo.NoteRepository
	Logger *logrus.Logger
}

func NewNoteService(r repo.NoteRepository, logger *logrus.Logger) *NoteService {
	return &NoteService{Repo: r, Logger: logger}
}

type CreateNoteInput struct {
	Title       string
	Description string
	Tag         string
	Pinned      bool
}

func (s *NoteService) Create(ctx context.Context, owner string, in CreateNoteInput) (*entity.Note, error) {
	tag := in.Tag
	if tag == "" {
		tag = defaultTag
	}
	n := &entity.Note{
		Owner:       owner,
		Title:       in.Title,
		Description: in.Description,
		Tag:         tag,
		Pinned:      in.Pinned,
	}
	if err := s.Repo.Insert(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListMine returns the caller's active notes in store order.
func (s *NoteService) ListMine(ctx context.Context, owner string) ([]entity.Note, error) {
	return s.Repo.ListActiveByOwner(ctx, owner)
}

// ListBin returns the caller's soft-deleted notes.
func (s *NoteService) ListBin(ctx context.Context, owner string) ([]entity.Note, error) {
	return s.Repo.ListBinnedByOwner(ctx, owner)
}

type UpdateNoteInput struct {
	Title       *string
	Description *string
	Tag         *string
	Pinned      *bool
}

// Update applies the supplied fields to an active note. Existence and
// ownership are checked before any field is written; nil fields stay as-is.
func (s *NoteService) Update(ctx context.Context, owner, noteID string, in UpdateNoteInput) (*entity.Note, error) {
	n, err := s.fetchOwned(ctx, owner, s.Repo.GetActive, noteID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		n.Title = *in.Title
	}
	if in.Description != nil {
		n.Description = *in.Description
	}
	if in.Tag != nil {
		n.Tag = *in.Tag
	}
	if in.Pinned != nil {
		n.Pinned = *in.Pinned
	}

	if err := s.Repo.Update(ctx, n); err != nil {
		if errors.Is(err, repo.ErrNoRecord) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return n, nil
}

// SoftDelete moves an active note into the bin and returns the bin copy.
func (s *NoteService) SoftDelete(ctx context.Context, owner, noteID string) (*entity.Note, error) {
	if _, err := s.fetchOwned(ctx, owner, s.Repo.GetActive, noteID); err != nil {
		return nil, err
	}
	n, err := s.Repo.MoveToBin(ctx, noteID)
	if err != nil {
		if errors.Is(err, repo.ErrNoRecord) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return n, nil
}

// Restore moves a binned note back to the active store and returns that copy.
func (s *NoteService) Restore(ctx context.Context, owner, noteID string) (*entity.Note, error) {
	if _, err := s.fetchOwned(ctx, owner, s.Repo.GetBinned, noteID); err != nil {
		return nil, err
	}
	n, err := s.Repo.RestoreFromBin(ctx, noteID)
	if err != nil {
		if errors.Is(err, repo.ErrNoRecord) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return n, nil
}

// Purge deletes a binned note permanently and returns the removed record.
func (s *NoteService) Purge(ctx context.Context, owner, noteID string) (*entity.Note, error) {
	if _, err := s.fetchOwned(ctx, owner, s.Repo.GetBinned, noteID); err != nil {
		return nil, err
	}
	n, err := s.Repo.DeleteFromBin(ctx, noteID)
	if err != nil {
		if errors.Is(err, repo.ErrNoRecord) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return n, nil
}

type fetchFn func(ctx context.Context, id string) (*entity.Note, error)

// fetchOwned loads a note and enforces ownership. A missing or malformed
// owner on the stored record is a mismatch, never a silent pass.
func (s *NoteService) fetchOwned(ctx context.Context, owner string, fetch fetchFn, noteID string) (*entity.Note, error) {
	n, err := fetch(ctx, noteID)
	if err != nil {
		if errors.Is(err, repo.ErrNoRecord) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	if owner == "" || n.Owner != owner {
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"note_id": noteID, "caller": owner}).Warn("ownership check failed")
		}
		return nil, ErrNotOwner
	}
	return n, nil
}

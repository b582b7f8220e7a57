package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/noteplus/noteplus-api/internal/domain/entity"
	repo "github.com/noteplus/noteplus-api/internal/domain/repository"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]*entity.User{},
		byEmail: map[string]*entity.User{},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now()
	cp := *u
	f.byID[u.ID] = &cp
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNoRecord
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repo.ErrNoRecord
	}
	cp := *u
	return &cp, nil
}

// fakeNoteRepo keeps two maps mirroring the notes and bin_notes tables.
// Moves assign fresh ids, like the real RETURNING-based implementation.
type fakeNoteRepo struct {
	mu     sync.Mutex
	active map[string]*entity.Note
	bin    map[string]*entity.Note
	nextID int
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{
		active: map[string]*entity.Note{},
		bin:    map[string]*entity.Note{},
	}
}

func (f *fakeNoteRepo) newID() string {
	f.nextID++
	return fmt.Sprintf("note-%d", f.nextID)
}

func (f *fakeNoteRepo) Insert(_ context.Context, n *entity.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = f.newID()
	if n.Tag == "" {
		n.Tag = "General"
	}
	n.CreatedAt = time.Now()
	cp := *n
	f.active[n.ID] = &cp
	return nil
}

func getFrom(m map[string]*entity.Note, id string) (*entity.Note, error) {
	n, ok := m[id]
	if !ok {
		return nil, repo.ErrNoRecord
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNoteRepo) GetActive(_ context.Context, id string) (*entity.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return getFrom(f.active, id)
}

func (f *fakeNoteRepo) GetBinned(_ context.Context, id string) (*entity.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return getFrom(f.bin, id)
}

func listFrom(m map[string]*entity.Note, owner string) []entity.Note {
	out := []entity.Note{}
	for _, n := range m {
		if n.Owner == owner {
			out = append(out, *n)
		}
	}
	return out
}

func (f *fakeNoteRepo) ListActiveByOwner(_ context.Context, owner string) ([]entity.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return listFrom(f.active, owner), nil
}

func (f *fakeNoteRepo) ListBinnedByOwner(_ context.Context, owner string) ([]entity.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return listFrom(f.bin, owner), nil
}

func (f *fakeNoteRepo) Update(_ context.Context, n *entity.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.active[n.ID]; !ok {
		return repo.ErrNoRecord
	}
	cp := *n
	f.active[n.ID] = &cp
	return nil
}

func (f *fakeNoteRepo) move(from, to map[string]*entity.Note, id string) (*entity.Note, error) {
	src, ok := from[id]
	if !ok {
		return nil, repo.ErrNoRecord
	}
	cp := *src
	cp.ID = f.newID()
	to[cp.ID] = &cp
	delete(from, id)
	out := cp
	return &out, nil
}

func (f *fakeNoteRepo) MoveToBin(_ context.Context, id string) (*entity.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.move(f.active, f.bin, id)
}

func (f *fakeNoteRepo) RestoreFromBin(_ context.Context, id string) (*entity.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.move(f.bin, f.active, id)
}

func (f *fakeNoteRepo) DeleteFromBin(_ context.Context, id string) (*entity.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.bin[id]
	if !ok {
		return nil, repo.ErrNoRecord
	}
	cp := *n
	delete(f.bin, id)
	return &cp, nil
}

var (
	_ repo.UserRepository = (*fakeUserRepo)(nil)
	_ repo.NoteRepository = (*fakeNoteRepo)(nil)
)

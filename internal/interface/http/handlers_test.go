package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/noteplus/noteplus-api/internal/application"
	"github.com/noteplus/noteplus-api/internal/domain/entity"
	repo "github.com/noteplus/noteplus-api/internal/domain/repository"
	handlers "github.com/noteplus/noteplus-api/internal/interface/http"
	"github.com/noteplus/noteplus-api/internal/interface/middleware"
	"github.com/noteplus/noteplus-api/internal/router"
	"github.com/noteplus/noteplus-api/internal/router/modules"
	"github.com/noteplus/noteplus-api/pkg/helpers"
	"github.com/noteplus/noteplus-api/pkg/validation"
)

// In-memory repositories backing the full HTTP stack in tests.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	seq   int
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[string]*entity.User{}} }

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	u.CreatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNoRecord
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNoRecord
}

type memNoteRepo struct {
	mu     sync.Mutex
	active map[string]*entity.Note
	bin    map[string]*entity.Note
	seq    int
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{active: map[string]*entity.Note{}, bin: map[string]*entity.Note{}}
}

func (m *memNoteRepo) Insert(_ context.Context, n *entity.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	n.ID = fmt.Sprintf("note-%d", m.seq)
	if n.Tag == "" {
		n.Tag = "General"
	}
	n.CreatedAt = time.Now()
	cp := *n
	m.active[n.ID] = &cp
	return nil
}

func (m *memNoteRepo) get(store map[string]*entity.Note, id string) (*entity.Note, error) {
	n, ok := store[id]
	if !ok {
		return nil, repo.ErrNoRecord
	}
	cp := *n
	return &cp, nil
}

func (m *memNoteRepo) GetActive(_ context.Context, id string) (*entity.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(m.active, id)
}

func (m *memNoteRepo) GetBinned(_ context.Context, id string) (*entity.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(m.bin, id)
}

func (m *memNoteRepo) list(store map[string]*entity.Note, owner string) []entity.Note {
	out := []entity.Note{}
	for _, n := range store {
		if n.Owner == owner {
			out = append(out, *n)
		}
	}
	return out
}

func (m *memNoteRepo) ListActiveByOwner(_ context.Context, owner string) ([]entity.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(m.active, owner), nil
}

func (m *memNoteRepo) ListBinnedByOwner(_ context.Context, owner string) ([]entity.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(m.bin, owner), nil
}

func (m *memNoteRepo) Update(_ context.Context, n *entity.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.active[n.ID]; !ok {
		return repo.ErrNoRecord
	}
	cp := *n
	m.active[n.ID] = &cp
	return nil
}

func (m *memNoteRepo) move(from, to map[string]*entity.Note, id string) (*entity.Note, error) {
	src, ok := from[id]
	if !ok {
		return nil, repo.ErrNoRecord
	}
	m.seq++
	cp := *src
	cp.ID = fmt.Sprintf("note-%d", m.seq)
	to[cp.ID] = &cp
	delete(from, id)
	out := cp
	return &out, nil
}

func (m *memNoteRepo) MoveToBin(_ context.Context, id string) (*entity.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.move(m.active, m.bin, id)
}

func (m *memNoteRepo) RestoreFromBin(_ context.Context, id string) (*entity.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.move(m.bin, m.active, id)
}

func (m *memNoteRepo) DeleteFromBin(_ context.Context, id string) (*entity.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.bin[id]
	if !ok {
		return nil, repo.ErrNoRecord
	}
	cp := *n
	delete(m.bin, id)
	return &cp, nil
}

var (
	_ repo.UserRepository = (*memUserRepo)(nil)
	_ repo.NoteRepository = (*memNoteRepo)(nil)
)

// newTestServer wires the real modules, middleware and services over the
// in-memory repositories.
func newTestServer() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	jwt := helpers.NewJWTManager("handler-test-secret", 0)

	userSvc := application.NewUserService(newMemUserRepo(), jwt, nil, nil, logger)
	noteSvc := application.NewNoteService(newMemNoteRepo(), logger)

	r := gin.New()
	reg := router.NewRegistry(r)
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(userSvc, logger), jwt))
	reg.Add(modules.NewNotesModule(handlers.NewNoteHandler(noteSvc, logger), jwt))
	reg.RegisterAll()
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func do(t *testing.T, r *gin.Engine, method, path, token string, payload any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/auth/createuser", "", gin.H{
		"name":     "Test User",
		"gender":   "other",
		"email":    email,
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var data struct {
		AuthToken string `json:"auth_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AuthToken)
	return data.AuthToken
}

package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/noteplus/noteplus-api/internal/domain/entity"
	repo "github.com/noteplus/noteplus-api/internal/domain/repository"
	"github.com/noteplus/noteplus-api/pkg/helpers"
	"github.com/noteplus/noteplus-api/pkg/mailer"
)

var (
	// ErrInvalidCredentials is returned for unknown email and wrong password
	// alike, so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

const profileCacheTTL = 15 * time.Minute

func profileKey(userID string) string {
	return "user:profile:" + userID
}

// UserService owns user records: registration, login, current-user lookup.
// Redis and Pub are optional; a nil client skips caching / welcome emails.
type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, pub *helpers.RabbitPublisher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, JWT: jwt, Redis: rdb, Pub: pub, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Gender   string
	Email    string
	Password string
}

// Register creates a user and returns a token bound to the new id.
// Uniqueness is pre-checked on email; the UNIQUE constraint in the schema
// backstops the race between check and insert.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return "", ErrUserExists
	} else if !errors.Is(err, repo.ErrNoRecord) {
		return "", err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return "", err
	}

	u := &entity.User{
		Name:     in.Name,
		Gender:   in.Gender,
		Email:    in.Email,
		Password: hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return "", err
	}

	token, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return "", err
	}

	s.enqueueWelcomeEmail(ctx, u)
	return token, nil
}

func (s *UserService) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data:     map[string]any{"Name": u.Name},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}

// Login validates email/password and returns a fresh token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNoRecord) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", ErrInvalidCredentials
	}
	return s.JWT.GenerateToken(u.ID)
}

// Profile is a User minus the password hash.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toProfile(u *entity.User) *Profile {
	return &Profile{ID: u.ID, Name: u.Name, Gender: u.Gender, Email: u.Email, CreatedAt: u.CreatedAt}
}

// GetCurrentUser resolves the authenticated identity to its profile, through
// a redis read-through cache when available. Users never mutate in scope, so
// the cache needs no invalidation.
func (s *UserService) GetCurrentUser(ctx context.Context, userID string) (*Profile, error) {
	if s.Redis != nil {
		var cached Profile
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, profileKey(userID), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNoRecord) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	p := toProfile(u)
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileKey(userID), p, profileCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("profile cache set failed")
		}
	}
	return p, nil
}

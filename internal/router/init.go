package router

import (
	"github.com/noteplus/noteplus-api/internal/application"
	"github.com/noteplus/noteplus-api/internal/container"
	pginfra "github.com/noteplus/noteplus-api/internal/infrastructure/postgres"
	handlers "github.com/noteplus/noteplus-api/internal/interface/http"
	"github.com/noteplus/noteplus-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(pool)
	userSvc := application.NewUserService(userRepo, jwt, container.GetRedis(), container.GetRabbitPub(), logger)
	authHandler := handlers.NewAuthHandler(userSvc, logger)

	noteRepo := pginfra.NewNoteRepository(pool)
	noteSvc := application.NewNoteService(noteRepo, logger)
	noteHandler := handlers.NewNoteHandler(noteSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewNotesModule(noteHandler, jwt))
}

package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/onboard-api/internal/api"
	apiMiddleware "github.com/phrazzld/onboard-api/internal/api/middleware"
)

// setupRouter creates the application router with its middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	api.RegisterRoutes(r, api.Handlers{
		Users:          api.NewUserHandler(app.userStore, app.logger),
		Questionnaires: api.NewQuestionnaireHandler(app.questionnaireStore, app.logger),
		Health: api.NewHealthHandler(app.pool,
			time.Duration(app.config.Database.ConnectTimeoutSeconds)*time.Second),
	})

	return r
}

package api

import "github.com/go-chi/chi/v5"

// Handlers groups the HTTP handlers mounted by RegisterRoutes.
type Handlers struct {
	Users          *UserHandler
	Questionnaires *QuestionnaireHandler
	Health         *HealthHandler
}

// RegisterRoutes mounts every endpoint on r.
func RegisterRoutes(r chi.Router, h Handlers) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.Users.CreateUser)
		r.Get("/{id}", h.Users.GetUser)
		r.Patch("/{id}", h.Users.UpdateUser)
		r.Delete("/{id}", h.Users.DeleteUser)

		r.Get("/{id}/questionnaire", h.Questionnaires.GetQuestionnaire)
		r.Delete("/{id}/questionnaire", h.Questionnaires.DeleteQuestionnaire)
	})

	r.Post("/questionnaires", h.Questionnaires.CreateQuestionnaire)

	if h.Health != nil {
		r.Get("/health", h.Health.Health)
	}
}

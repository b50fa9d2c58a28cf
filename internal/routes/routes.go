package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Gangsta686/HabitForgeApp2/internal/handlers"
	appmw "github.com/Gangsta686/HabitForgeApp2/internal/middleware"
)

func NewRoutes(h *handlers.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(appmw.Authenticated)

		r.Get("/auth/me", h.Me)
		r.Post("/auth/logout", h.Logout)
		r.Put("/auth/login-name", h.ChangeLoginName)

		r.Put("/profile/avatar", h.SetAvatar)
		r.Post("/profile/avatar/cycle", h.CycleAvatar)

		r.Get("/balance", h.GetBalance)
		r.Post("/balance/topup", h.TopUp)
		r.Get("/balance/history", h.BalanceHistory)

		r.Get("/stats", h.GetStatistics)

		r.Post("/challenges", h.CreateChallenge)
		r.Get("/challenges", h.ListChallenges)
		r.Put("/challenges/{id}/status", h.SetChallengeStatus)
		r.Delete("/challenges/{id}", h.RemoveChallenge)

		r.Get("/habits", h.ListHabits)
		r.Post("/habits", h.AddHabit)
		r.Post("/habits/{id}/increment", h.IncrementHabit)

		r.Get("/group", h.GetGroupWeek)
		r.Post("/group/join", h.JoinGroupWeek)
		r.Post("/group/participants/{id}/cycle", h.CycleParticipant)
		r.Post("/group/finalize", h.FinalizeGroupWeek)
		r.Post("/group/reset", h.ResetGroupWeek)
	})

	return r
}

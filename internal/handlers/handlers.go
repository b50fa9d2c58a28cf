package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Gangsta686/HabitForgeApp2/configs"
	"github.com/Gangsta686/HabitForgeApp2/internal/engine"
	"github.com/Gangsta686/HabitForgeApp2/internal/httputil"
	"github.com/Gangsta686/HabitForgeApp2/internal/logger"
	"github.com/Gangsta686/HabitForgeApp2/internal/models"
	"github.com/Gangsta686/HabitForgeApp2/internal/store"
	"github.com/Gangsta686/HabitForgeApp2/internal/validation"
)

// Handler translates JSON requests into engine calls. It owns no business
// rules of its own.
type Handler struct {
	Engine  *engine.Engine
	History *store.History
}

func NewHandler(e *engine.Engine, h *store.History) *Handler {
	return &Handler{Engine: e, History: h}
}

// writeEngineError maps the engine's sentinel errors onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		httputil.WriteError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, engine.ErrInvalidCredentials),
		errors.Is(err, engine.ErrNotRegistered):
		httputil.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, engine.ErrChallengeNotFound),
		errors.Is(err, engine.ErrParticipantNotFound),
		errors.Is(err, engine.ErrHabitNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrCapacityExceeded),
		errors.Is(err, engine.ErrWindowExpired),
		errors.Is(err, engine.ErrRosterFull),
		errors.Is(err, engine.ErrDuplicateName),
		errors.Is(err, engine.ErrInsufficientFunds),
		errors.Is(err, engine.ErrNotJoined),
		errors.Is(err, engine.ErrWeekNotEnded),
		errors.Is(err, engine.ErrSelfImmutable),
		errors.Is(err, engine.ErrCooldownActive):
		httputil.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrMissingName),
		errors.Is(err, engine.ErrUnknownStatus),
		errors.Is(err, engine.ErrInvalidAmount),
		errors.Is(err, engine.ErrLoginTooShort),
		errors.Is(err, engine.ErrInvalidEmail),
		errors.Is(err, engine.ErrPasswordRequired),
		errors.Is(err, engine.ErrLoginRequired),
		errors.Is(err, engine.ErrTitleRequired):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Log.Error("unexpected engine error", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func issueToken(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.AppConfig.JWT.SECRET))
}

type authResponse struct {
	Token   string         `json:"token"`
	Profile models.Profile `json:"profile"`
}

// Register creates the local account and signs it in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.Engine.Register(req.Name, req.Email, req.Password); err != nil {
		writeEngineError(w, err)
		return
	}
	h.respondAuth(w)
}

// Login authenticates with login name or email.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.Engine.Login(req.Login, req.Password); err != nil {
		writeEngineError(w, err)
		return
	}
	h.respondAuth(w)
}

func (h *Handler) respondAuth(w http.ResponseWriter) {
	profile := h.Engine.Profile()
	signed, err := issueToken(profile.LoginName)
	if err != nil {
		logger.Log.Error("failed to sign jwt", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create token")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, authResponse{Token: signed, Profile: profile})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Engine.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the profile with the login-name cooldown state.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, struct {
		Profile             models.Profile `json:"profile"`
		LoginChangeDaysLeft int            `json:"loginChangeDaysLeft"`
	}{h.Engine.Profile(), h.Engine.LoginChangeDaysLeft()})
}

func (h *Handler) ChangeLoginName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LoginName string `json:"loginName"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.Engine.ChangeLoginName(req.LoginName); err != nil {
		writeEngineError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.Engine.Profile())
}

func (h *Handler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ref string `json:"ref"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.Engine.SetAvatarRef(req.Ref)
	httputil.WriteJSON(w, http.StatusOK, h.Engine.Profile())
}

func (h *Handler) CycleAvatar(w http.ResponseWriter, r *http.Request) {
	ref := h.Engine.CycleAvatar()
	httputil.WriteJSON(w, http.StatusOK, struct {
		AvatarRef string `json:"avatarRef"`
	}{ref})
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, struct {
		Balance int64 `json:"balance"`
	}{h.Engine.Balance()})
}

func (h *Handler) TopUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int64 `json:"amount"`
	}
	if !decode(w, r, &req) {
		return
	}
	balance, err := h.Engine.TopUp(req.Amount)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, struct {
		Balance int64 `json:"balance"`
	}{balance})
}

// BalanceHistory lists recorded balance movements, newest first.
func (h *Handler) BalanceHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.History.Entries(limit)
	if err != nil {
		logger.Log.Error("failed to read ledger history", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to read history")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.Engine.Statistics())
}

func (h *Handler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req validation.ChallengeCandidate
	if !decode(w, r, &req) {
		return
	}
	ch, err := h.Engine.CreateChallenge(req)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ch)
}

// ListChallenges returns one page of the filtered challenge list. The
// filter defaults to all, the page to 1; out-of-range pages clamp.
func (h *Handler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	filter := engine.ChallengeFilter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = engine.FilterAll
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	httputil.WriteJSON(w, http.StatusOK, h.Engine.ChallengesPage(filter, page))
}

func (h *Handler) SetChallengeStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.ChallengeStatus `json:"status"`
	}
	if !decode(w, r, &req) {
		return
	}
	ch, err := h.Engine.SetChallengeStatus(chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ch)
}

func (h *Handler) RemoveChallenge(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.RemoveChallenge(chi.URLParam(r, "id")); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListHabits(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.Engine.Habits())
}

func (h *Handler) AddHabit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if !decode(w, r, &req) {
		return
	}
	habit, err := h.Engine.AddHabit(req.Title, req.Description)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, habit)
}

func (h *Handler) IncrementHabit(w http.ResponseWriter, r *http.Request) {
	habit, err := h.Engine.IncrementHabit(chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, habit)
}

func (h *Handler) GetGroupWeek(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.Engine.GroupWeek())
}

func (h *Handler) JoinGroupWeek(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nickname string `json:"nickname"`
	}
	if !decode(w, r, &req) {
		return
	}
	participant, err := h.Engine.JoinWeek(req.Nickname)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, participant)
}

func (h *Handler) CycleParticipant(w http.ResponseWriter, r *http.Request) {
	participant, err := h.Engine.CycleParticipant(chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, participant)
}

func (h *Handler) FinalizeGroupWeek(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.Engine.FinalizeWeek()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, struct {
		Outcome models.WeekOutcome  `json:"outcome"`
		Week    engine.GroupWeekView `json:"week"`
	}{outcome, h.Engine.GroupWeek()})
}

func (h *Handler) ResetGroupWeek(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.Engine.ResetWeek())
}

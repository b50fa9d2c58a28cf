package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/Gangsta686/HabitForgeApp2/internal/models"
	"github.com/Gangsta686/HabitForgeApp2/internal/validation"
)

// ChallengeFilter selects a derived view of the personal challenge list.
type ChallengeFilter string

const (
	FilterAll    ChallengeFilter = "all"
	FilterActive ChallengeFilter = "active"
	// FilterSuccess and FilterFail match challenges completed with that
	// outcome during the current wall-clock month.
	FilterSuccess ChallengeFilter = "success"
	FilterFail    ChallengeFilter = "fail"
)

// ChallengePage is one pagination slice of a filtered challenge view.
type ChallengePage struct {
	Items      []models.PersonalChallenge `json:"items"`
	Page       int                        `json:"page"`
	TotalPages int                        `json:"totalPages"`
	Total      int                        `json:"total"`
}

// CreateChallenge validates a candidate and inserts it at the head of the
// list. There is no funds check here: the stake is a commitment, not a
// debit.
func (e *Engine) CreateChallenge(c validation.ChallengeCandidate) (models.PersonalChallenge, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.activeCountLocked() >= MaxActiveChallenges {
		return models.PersonalChallenge{}, ErrCapacityExceeded
	}

	norm, err := validation.Challenge(c)
	if err != nil {
		return models.PersonalChallenge{}, err
	}

	ch := &models.PersonalChallenge{
		ID:        uuid.NewString(),
		Exercise:  norm.Exercise,
		RepsTime:  norm.RepsTime,
		Sets:      norm.Sets,
		PerWeek:   norm.PerWeek,
		Stake:     norm.Stake,
		FailMode:  norm.FailMode,
		Status:    models.ChallengeActive,
		CreatedAt: e.clk.Now(),
	}
	// Most recent first.
	e.challenges = append([]*models.PersonalChallenge{ch}, e.challenges...)
	return *ch, nil
}

// SetChallengeStatus moves a challenge between active, success and fail.
// Transitions are unrestricted, including reopening a finished challenge.
func (e *Engine) SetChallengeStatus(id string, next models.ChallengeStatus) (models.PersonalChallenge, error) {
	if !next.Valid() {
		return models.PersonalChallenge{}, ErrUnknownStatus
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ch := e.findChallengeLocked(id)
	if ch == nil {
		return models.PersonalChallenge{}, ErrChallengeNotFound
	}

	prev := ch.Status
	ch.Status = next
	if next == models.ChallengeActive {
		ch.CompletedAt = nil
	} else {
		now := e.clk.Now()
		ch.CompletedAt = &now
	}

	// Lifetime counters only ever grow; reopening does not take a day back.
	if next == models.ChallengeSuccess && prev != models.ChallengeSuccess {
		e.profile.CompletedDays++
	}
	if next == models.ChallengeFail && prev != models.ChallengeFail {
		e.profile.FailedDays++
	}

	return *ch, nil
}

// RemoveChallenge deletes a challenge of any status, but only within the
// 12-hour window after its creation.
func (e *Engine) RemoveChallenge(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, ch := range e.challenges {
		if ch.ID != id {
			continue
		}
		if e.clk.Now().Sub(ch.CreatedAt) > DeleteWindow {
			return ErrWindowExpired
		}
		e.challenges = append(e.challenges[:i], e.challenges[i+1:]...)
		return nil
	}
	return ErrChallengeNotFound
}

// Challenges returns the filtered list, most recent first.
func (e *Engine) Challenges(filter ChallengeFilter) []models.PersonalChallenge {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filteredLocked(filter)
}

// ChallengesPage returns one page of the filtered list. The page index is
// clamped into [1, totalPages], so out-of-range requests still answer.
func (e *Engine) ChallengesPage(filter ChallengeFilter, page int) ChallengePage {
	e.mu.Lock()
	defer e.mu.Unlock()

	filtered := e.filteredLocked(filter)
	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	from := (page - 1) * PageSize
	to := from + PageSize
	if from > total {
		from = total
	}
	if to > total {
		to = total
	}

	return ChallengePage{
		Items:      filtered[from:to],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}
}

func (e *Engine) filteredLocked(filter ChallengeFilter) []models.PersonalChallenge {
	now := e.clk.Now()
	out := make([]models.PersonalChallenge, 0, len(e.challenges))
	for _, ch := range e.challenges {
		switch filter {
		case FilterActive:
			if ch.Status != models.ChallengeActive {
				continue
			}
		case FilterSuccess:
			if ch.Status != models.ChallengeSuccess || !sameMonth(ch.CompletedAt, now) {
				continue
			}
		case FilterFail:
			if ch.Status != models.ChallengeFail || !sameMonth(ch.CompletedAt, now) {
				continue
			}
		}
		out = append(out, *ch)
	}
	return out
}

func (e *Engine) activeCountLocked() int {
	n := 0
	for _, ch := range e.challenges {
		if ch.Status == models.ChallengeActive {
			n++
		}
	}
	return n
}

func (e *Engine) findChallengeLocked(id string) *models.PersonalChallenge {
	for _, ch := range e.challenges {
		if ch.ID == id {
			return ch
		}
	}
	return nil
}

// sameMonth reports whether at falls in the same calendar month and year
// as now. Month membership is judged at query time, against the
// completion timestamp.
func sameMonth(at *time.Time, now time.Time) bool {
	if at == nil {
		return false
	}
	return at.Month() == now.Month() && at.Year() == now.Year()
}

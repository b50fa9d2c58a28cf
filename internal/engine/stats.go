package engine

import (
	"math"

	"github.com/Gangsta686/HabitForgeApp2/internal/models"
)

// Statistics is the read-only aggregate over the personal challenge list
// and the profile counters. Every call recomputes it from scratch; nothing
// here is cached or independently mutated.
type Statistics struct {
	Total          int   `json:"total"`
	Success        int   `json:"success"`
	Fail           int   `json:"fail"`
	Active         int   `json:"active"`
	SuccessPercent int   `json:"successPercent"`
	AverageStake   int64 `json:"averageStake"`

	CompletedDays    int   `json:"completedDays"`
	FailedDays       int   `json:"failedDays"`
	TotalStaked      int64 `json:"totalStaked"`
	LifetimeAvgStake int64 `json:"lifetimeAvgStake"`
	Balance          int64 `json:"balance"`
}

// Statistics derives the current metrics. It has no failure modes and
// mutates nothing.
func (e *Engine) Statistics() Statistics {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Statistics{
		Total:            len(e.challenges),
		CompletedDays:    e.profile.CompletedDays,
		FailedDays:       e.profile.FailedDays,
		TotalStaked:      e.profile.TotalStaked,
		LifetimeAvgStake: e.profile.AverageStake(),
		Balance:          e.profile.Balance,
	}

	var stakeSum int64
	for _, ch := range e.challenges {
		stakeSum += ch.Stake
		switch ch.Status {
		case models.ChallengeSuccess:
			s.Success++
		case models.ChallengeFail:
			s.Fail++
		case models.ChallengeActive:
			s.Active++
		}
	}

	if s.Total > 0 {
		s.SuccessPercent = int(math.Round(float64(s.Success) / float64(s.Total) * 100))
		s.AverageStake = int64(math.Round(float64(stakeSum) / float64(s.Total)))
	}
	return s
}

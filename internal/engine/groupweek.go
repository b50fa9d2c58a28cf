package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Gangsta686/HabitForgeApp2/internal/models"
)

// GroupWeekView is the derived, read-only picture of the current group
// week. Prize pool and payout are recomputed here on every call and never
// stored.
type GroupWeekView struct {
	Start           time.Time            `json:"start"`
	End             time.Time            `json:"end"`
	ElapsedDays     int                  `json:"elapsedDays"`
	Ended           bool                 `json:"ended"`
	State           models.WeekState     `json:"state"`
	Outcome         models.WeekOutcome   `json:"outcome,omitempty"`
	Participants    []models.Participant `json:"participants"`
	Joined          bool                 `json:"joined"`
	EntryFee        int64                `json:"entryFee"`
	BasePrize       int64                `json:"basePrize"`
	PrizePool       int64                `json:"prizePool"`
	Winners         int                  `json:"winners"`
	PayoutPerWinner int64                `json:"payoutPerWinner"`
	Exercises       []string             `json:"exercises"`
	Frequency       int                  `json:"frequency"`
}

// JoinWeek adds a participant to the roster. The first join without an
// own entry is the caller's self join: it requires the entry fee and is
// the only one that touches the balance. Later joins add the locally
// simulated co-participants.
func (e *Engine) JoinWeek(nickname string) (models.Participant, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.week.participants) >= MaxParticipants {
		return models.Participant{}, ErrRosterFull
	}

	name := strings.TrimSpace(nickname)
	if name == "" {
		name = strings.TrimSpace(e.profile.LoginName)
	}
	if name == "" {
		return models.Participant{}, ErrMissingName
	}

	for _, p := range e.week.participants {
		if strings.EqualFold(p.Name, name) {
			return models.Participant{}, ErrDuplicateName
		}
	}

	self := e.week.selfID == ""
	if self {
		if err := e.debitLocked(EntryFee, models.ReasonEntryFee); err != nil {
			return models.Participant{}, err
		}
		e.profile.TotalStaked += EntryFee
		e.profile.StakeEvents++
	}

	p := &models.Participant{
		ID:       uuid.NewString(),
		Name:     name,
		JoinedAt: e.clk.Now(),
		Status:   models.ParticipantInProgress,
		Self:     self,
	}
	e.week.participants = append(e.week.participants, p)
	if self {
		e.week.selfID = p.ID
	}
	return *p, nil
}

// CycleParticipant advances a simulated participant through
// in_progress -> success -> fail -> in_progress. The self entry is
// immutable here; only FinalizeWeek may change it.
func (e *Engine) CycleParticipant(id string) (models.Participant, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range e.week.participants {
		if p.ID != id {
			continue
		}
		if p.Self {
			return models.Participant{}, ErrSelfImmutable
		}
		p.Status = p.Status.Next()
		return *p, nil
	}
	return models.Participant{}, ErrParticipantNotFound
}

// FinalizeWeek fixes the week outcome once the week has ended. Calling it
// again after finalization is a no-op that reports the fixed outcome, so
// the stake return can never be credited twice.
func (e *Engine) FinalizeWeek() (models.WeekOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.week.outcome != models.OutcomeNone {
		return e.week.outcome, nil
	}
	if e.week.selfID == "" {
		return models.OutcomeNone, ErrNotJoined
	}
	if !e.weekEndedLocked() {
		return models.OutcomeNone, ErrWeekNotEnded
	}

	// The week always resolves as a success for the local user; a fail
	// path never ships in the current rules.
	outcome := models.OutcomeSuccess
	e.week.outcome = outcome
	for _, p := range e.week.participants {
		if p.ID == e.week.selfID {
			p.Status = models.ParticipantStatus(outcome)
		}
	}
	if outcome == models.OutcomeSuccess {
		// Only a success returns the stake. Credits cannot fail.
		_ = e.creditLocked(EntryFee, models.ReasonStakeReturn)
	}
	return outcome, nil
}

// ResetWeek starts a fresh week: empty roster, no outcome, a new window
// anchored to the current Monday and a new exercise draw. Allowed from
// any state.
func (e *Engine) ResetWeek() GroupWeekView {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetWeekLocked()
	return e.weekViewLocked()
}

// GroupWeek returns the derived view of the current week.
func (e *Engine) GroupWeek() GroupWeekView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.weekViewLocked()
}

func (e *Engine) resetWeekLocked() {
	e.week = weekState{
		start:     weekStart(e.clk.Now()),
		exercises: e.pickExercisesLocked(),
		frequency: weeklyFrequencyOptions[e.rng.Intn(len(weeklyFrequencyOptions))],
	}
}

// pickExercisesLocked draws one to three distinct exercises for the week.
func (e *Engine) pickExercisesLocked() []string {
	count := e.rng.Intn(3) + 1
	picked := e.rng.Perm(len(exerciseOptions))[:count]
	out := make([]string, 0, count)
	for _, i := range picked {
		out = append(out, exerciseOptions[i])
	}
	return out
}

func (e *Engine) weekViewLocked() GroupWeekView {
	now := e.clk.Now()
	elapsed := int(now.Sub(e.week.start) / (24 * time.Hour))
	ended := elapsed >= WeekLengthDays

	state := models.WeekOpen
	switch {
	case e.week.outcome != models.OutcomeNone:
		state = models.WeekFinalized
	case ended:
		state = models.WeekReadyToFinalize
	}

	participants := make([]models.Participant, 0, len(e.week.participants))
	winners := 0
	for _, p := range e.week.participants {
		participants = append(participants, *p)
		if p.Status == models.ParticipantSuccess {
			winners++
		}
	}

	pool := int64(BasePrize) + int64(EntryFee)*int64(len(participants))
	var payout int64
	if winners > 0 {
		payout = pool / int64(winners)
	}

	return GroupWeekView{
		Start:           e.week.start,
		End:             e.week.start.AddDate(0, 0, WeekLengthDays-1),
		ElapsedDays:     elapsed,
		Ended:           ended,
		State:           state,
		Outcome:         e.week.outcome,
		Participants:    participants,
		Joined:          e.week.selfID != "",
		EntryFee:        EntryFee,
		BasePrize:       BasePrize,
		PrizePool:       pool,
		Winners:         winners,
		PayoutPerWinner: payout,
		Exercises:       e.week.exercises,
		Frequency:       e.week.frequency,
	}
}

func (e *Engine) weekEndedLocked() bool {
	return int(e.clk.Now().Sub(e.week.start)/(24*time.Hour)) >= WeekLengthDays
}

// weekStart normalizes now to the Monday at local midnight of its week.
func weekStart(now time.Time) time.Time {
	day := int(now.Weekday()) // Sunday == 0
	diff := 1 - day
	if day == 0 {
		diff = -6
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, diff)
}

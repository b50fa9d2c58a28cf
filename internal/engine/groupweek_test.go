package engine_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gangsta686/HabitForgeApp2/internal/engine"
	"github.com/Gangsta686/HabitForgeApp2/internal/models"
)

func TestWeekWindowAnchoredToMonday(t *testing.T) {
	e, _ := newTestEngine(t)
	week := e.GroupWeek()

	start := week.Start
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, start.AddDate(0, 0, 6), week.End)
	assert.Equal(t, 0, week.ElapsedDays)
	assert.False(t, week.Ended)
	assert.Equal(t, models.WeekOpen, week.State)
}

func TestJoinChecksRunInOrder(t *testing.T) {
	e, _ := newTestEngine(t)

	// No nickname and no login name.
	_, err := e.JoinWeek("   ")
	require.ErrorIs(t, err, engine.ErrMissingName)

	// Self join needs the entry fee.
	_, err = e.JoinWeek("runner")
	require.ErrorIs(t, err, engine.ErrInsufficientFunds)

	_, err = e.TopUp(engine.EntryFee)
	require.NoError(t, err)
	p, err := e.JoinWeek("runner")
	require.NoError(t, err)
	assert.True(t, p.Self)
	assert.Equal(t, models.ParticipantInProgress, p.Status)
	assert.Equal(t, int64(0), e.Balance())

	// Duplicate names are rejected case-insensitively.
	_, err = e.JoinWeek("RUNNER")
	require.ErrorIs(t, err, engine.ErrDuplicateName)

	// Simulated participants need no funds.
	for i := 0; i < engine.MaxParticipants-1; i++ {
		_, err = e.JoinWeek(fmt.Sprintf("mate-%d", i))
		require.NoError(t, err)
	}

	// The capacity check comes first: even a duplicate name reports Full.
	_, err = e.JoinWeek("runner")
	require.ErrorIs(t, err, engine.ErrRosterFull)
	assert.Len(t, e.GroupWeek().Participants, engine.MaxParticipants)
}

func TestJoinFallsBackToLoginName(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Register("steady_sam", "sam@x.io", "secret"))
	_, err := e.TopUp(engine.EntryFee)
	require.NoError(t, err)

	p, err := e.JoinWeek("")
	require.NoError(t, err)
	assert.Equal(t, "steady_sam", p.Name)
	assert.True(t, p.Self)
}

// The entry fee is debited exactly once per week lifetime: once joined,
// another own join is impossible, so a second debit can never happen.
func TestSelfJoinDebitsFeeExactlyOnce(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.TopUp(2 * engine.EntryFee)
	require.NoError(t, err)

	_, err = e.JoinWeek("runner")
	require.NoError(t, err)
	require.Equal(t, int64(engine.EntryFee), e.Balance())

	// A repeat attempt under the same name fails as duplicate, and any
	// other name joins as a simulated participant without a debit.
	_, err = e.JoinWeek("runner")
	require.ErrorIs(t, err, engine.ErrDuplicateName)
	_, err = e.JoinWeek("shadow")
	require.NoError(t, err)
	require.Equal(t, int64(engine.EntryFee), e.Balance())

	stats := e.Statistics()
	assert.Equal(t, int64(engine.EntryFee), stats.TotalStaked)
}

func TestCycleParticipantRotation(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.TopUp(engine.EntryFee)
	require.NoError(t, err)
	self, err := e.JoinWeek("runner")
	require.NoError(t, err)
	mate, err := e.JoinWeek("Ann")
	require.NoError(t, err)

	// in_progress -> success -> fail -> in_progress
	p, err := e.CycleParticipant(mate.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ParticipantSuccess, p.Status)
	p, err = e.CycleParticipant(mate.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ParticipantFail, p.Status)
	p, err = e.CycleParticipant(mate.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ParticipantInProgress, p.Status)

	_, err = e.CycleParticipant(self.ID)
	require.ErrorIs(t, err, engine.ErrSelfImmutable)
	_, err = e.CycleParticipant("missing")
	require.ErrorIs(t, err, engine.ErrParticipantNotFound)
}

func TestPrizePoolAndPayout(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.TopUp(engine.EntryFee)
	require.NoError(t, err)
	_, err = e.JoinWeek("me")
	require.NoError(t, err)
	ann, err := e.JoinWeek("Ann")
	require.NoError(t, err)
	ben, err := e.JoinWeek("Ben")
	require.NoError(t, err)

	week := e.GroupWeek()
	assert.Equal(t, int64(3000), week.PrizePool) // 1500 + 3*500
	assert.Equal(t, 0, week.Winners)
	assert.Equal(t, int64(0), week.PayoutPerWinner)

	_, err = e.CycleParticipant(ann.ID)
	require.NoError(t, err)
	_, err = e.CycleParticipant(ben.ID)
	require.NoError(t, err)

	week = e.GroupWeek()
	assert.Equal(t, 2, week.Winners)
	assert.Equal(t, int64(1500), week.PayoutPerWinner) // floor(3000/2)
}

func TestFinalizeRequiresJoinAndWeekEnd(t *testing.T) {
	e, clk := newTestEngine(t)

	_, err := e.FinalizeWeek()
	require.ErrorIs(t, err, engine.ErrNotJoined)

	_, err = e.TopUp(engine.EntryFee)
	require.NoError(t, err)
	_, err = e.JoinWeek("runner")
	require.NoError(t, err)

	_, err = e.FinalizeWeek()
	require.ErrorIs(t, err, engine.ErrWeekNotEnded)

	// Day seven from the week start is the first allowed instant.
	start := e.GroupWeek().Start
	clk.Set(start.Add(7*24*time.Hour - time.Second))
	_, err = e.FinalizeWeek()
	require.ErrorIs(t, err, engine.ErrWeekNotEnded)

	clk.Set(start.Add(7 * 24 * time.Hour))
	outcome, err := e.FinalizeWeek()
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, outcome)
	assert.Equal(t, models.WeekFinalized, e.GroupWeek().State)
}

func TestFinalizeIdempotent(t *testing.T) {
	e, clk := newTestEngine(t)
	_, err := e.TopUp(engine.EntryFee)
	require.NoError(t, err)
	self, err := e.JoinWeek("runner")
	require.NoError(t, err)
	require.Equal(t, int64(0), e.Balance())

	clk.Advance(7 * 24 * time.Hour)
	outcome, err := e.FinalizeWeek()
	require.NoError(t, err)
	require.Equal(t, models.OutcomeSuccess, outcome)
	require.Equal(t, int64(engine.EntryFee), e.Balance())

	// A second call reports the same outcome and credits nothing.
	outcome, err = e.FinalizeWeek()
	require.NoError(t, err)
	require.Equal(t, models.OutcomeSuccess, outcome)
	require.Equal(t, int64(engine.EntryFee), e.Balance())

	for _, p := range e.GroupWeek().Participants {
		if p.ID == self.ID {
			assert.Equal(t, models.ParticipantSuccess, p.Status)
		}
	}
}

func TestWeekStateReadyToFinalize(t *testing.T) {
	e, clk := newTestEngine(t)
	clk.Advance(7 * 24 * time.Hour)
	week := e.GroupWeek()
	assert.True(t, week.Ended)
	assert.Equal(t, models.WeekReadyToFinalize, week.State)
}

func TestResetWeekStartsFresh(t *testing.T) {
	e, clk := newTestEngine(t)
	_, err := e.TopUp(engine.EntryFee)
	require.NoError(t, err)
	_, err = e.JoinWeek("runner")
	require.NoError(t, err)
	clk.Advance(7 * 24 * time.Hour)
	_, err = e.FinalizeWeek()
	require.NoError(t, err)

	week := e.ResetWeek()
	assert.Empty(t, week.Participants)
	assert.False(t, week.Joined)
	assert.Equal(t, models.OutcomeNone, week.Outcome)
	assert.Equal(t, models.WeekOpen, week.State)
	assert.Equal(t, time.Monday, week.Start.Weekday())
	notEmpty := len(week.Exercises) >= 1 && len(week.Exercises) <= 3
	assert.True(t, notEmpty)

	// The fresh week accepts a new self join and charges a new fee from
	// the stake returned at finalization.
	require.Equal(t, int64(engine.EntryFee), e.Balance())
	p, err := e.JoinWeek("runner")
	require.NoError(t, err)
	assert.True(t, p.Self)
	assert.Equal(t, int64(0), e.Balance())
}

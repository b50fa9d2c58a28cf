package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gangsta686/HabitForgeApp2/internal/engine"
	"github.com/Gangsta686/HabitForgeApp2/internal/models"
	"github.com/Gangsta686/HabitForgeApp2/internal/validation"
)

func TestStatisticsEmpty(t *testing.T) {
	e, _ := newTestEngine(t)
	s := e.Statistics()
	assert.Zero(t, s.Total)
	assert.Zero(t, s.SuccessPercent)
	assert.Zero(t, s.AverageStake)
	assert.Zero(t, s.LifetimeAvgStake)
}

func TestStatisticsDerived(t *testing.T) {
	e, _ := newTestEngine(t)

	stakes := []string{"500", "1000", "1500"}
	var ids []string
	for _, stake := range stakes {
		c := validation.ChallengeCandidate{
			Exercise: "Push-ups",
			RepsTime: "12",
			Sets:     "10",
			PerWeek:  "4",
			Stake:    stake,
		}
		ch, err := e.CreateChallenge(c)
		require.NoError(t, err)
		ids = append(ids, ch.ID)
	}

	_, err := e.SetChallengeStatus(ids[0], models.ChallengeSuccess)
	require.NoError(t, err)
	_, err = e.SetChallengeStatus(ids[1], models.ChallengeFail)
	require.NoError(t, err)

	s := e.Statistics()
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Success)
	assert.Equal(t, 1, s.Fail)
	assert.Equal(t, 1, s.Active)
	assert.Equal(t, 33, s.SuccessPercent) // round(1/3*100)
	assert.Equal(t, int64(1000), s.AverageStake)
	assert.Equal(t, 1, s.CompletedDays)
	assert.Equal(t, 1, s.FailedDays)
}

func TestStatisticsNeverMutate(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.CreateChallenge(validation.ChallengeCandidate{
		Exercise: "Plank", RepsTime: "1", Sets: "3", PerWeek: "3", Stake: "700",
	})
	require.NoError(t, err)

	first := e.Statistics()
	second := e.Statistics()
	assert.Equal(t, first, second)
	assert.Len(t, e.Challenges(engine.FilterAll), 1)
}

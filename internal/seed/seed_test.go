package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gangsta686/HabitForgeApp2/internal/engine"
	"github.com/Gangsta686/HabitForgeApp2/internal/models"
)

func TestRunSeedsDemoProfileOnce(t *testing.T) {
	e := engine.New(engine.Options{})
	defer e.Close()

	Run(e)

	p := e.Profile()
	require.NotNil(t, p.User)
	assert.Equal(t, demoName, p.LoginName)
	assert.Equal(t, int64(demoBalance-engine.EntryFee), p.Balance)

	week := e.GroupWeek()
	assert.Len(t, week.Participants, 1+len(demoRoster))
	assert.True(t, week.Joined)

	// A second run leaves everything alone.
	Run(e)
	assert.Len(t, e.GroupWeek().Participants, 1+len(demoRoster))
	assert.Equal(t, int64(demoBalance-engine.EntryFee), e.Balance())
}

func TestRunSkipsRestoredProfile(t *testing.T) {
	e := engine.New(engine.Options{Restore: &models.AuthSnapshot{
		RegisteredUser: &models.RegisteredUser{Name: "kept", Email: "k@x.io", Password: "hash"},
		LoginName:      "kept",
		Balance:        123,
	}})
	defer e.Close()

	Run(e)
	assert.Equal(t, "kept", e.Profile().LoginName)
	assert.Equal(t, int64(123), e.Balance())
}

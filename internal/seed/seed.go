package seed

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Gangsta686/HabitForgeApp2/internal/engine"
	"github.com/Gangsta686/HabitForgeApp2/internal/logger"
)

const (
	demoName     = "demo_user"
	demoEmail    = "demo@habitforge.local"
	demoPassword = "password123"
	demoBalance  = 2000
)

// Simulated co-participants for the demo week.
var demoRoster = []string{"Ann", "Ben"}

// Run seeds a demo profile with a funded balance and a partially filled
// group week. It does nothing when a profile already exists, so restored
// snapshots are never overwritten.
func Run(e *engine.Engine) {
	if e.Profile().User != nil {
		logger.Log.Info("seed skipped, profile already present")
		return
	}

	if err := e.Register(demoName, demoEmail, demoPassword); err != nil {
		logger.Log.Error("seed register failed", zap.Error(err))
		return
	}
	if _, err := e.TopUp(demoBalance); err != nil {
		logger.Log.Error("seed top-up failed", zap.Error(err))
		return
	}
	if _, err := e.JoinWeek(""); err != nil {
		logger.Log.Error("seed self join failed", zap.Error(err))
		return
	}
	for _, name := range demoRoster {
		if _, err := e.JoinWeek(name); err != nil && !errors.Is(err, engine.ErrDuplicateName) {
			logger.Log.Error("seed join failed", zap.String("name", name), zap.Error(err))
		}
	}

	logger.Log.Info("seeded demo profile",
		zap.String("name", demoName),
		zap.Int64("balance", e.Balance()),
		zap.Int("roster", len(e.GroupWeek().Participants)))
}

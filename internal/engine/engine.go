// Package engine implements the challenge and ledger core: personal
// challenge lifecycle, the weekly group challenge, the balance account and
// derived statistics. The engine owns all of its state; callers reach it
// only through the operations defined here.
package engine

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Gangsta686/HabitForgeApp2/internal/clock"
	"github.com/Gangsta686/HabitForgeApp2/internal/logger"
	"github.com/Gangsta686/HabitForgeApp2/internal/models"
)

// Fixed game rules, mirrored from the product definition.
const (
	EntryFee            = 500
	BasePrize           = 1500
	MaxParticipants     = 10
	MaxActiveChallenges = 5
	WeekLengthDays      = 7
	DeleteWindow        = 12 * time.Hour
	PageSize            = 5
	MinLoginLength      = 5
	LoginChangeCooldown = 14 * 24 * time.Hour
)

// exerciseOptions is the pool the weekly group exercises are drawn from.
var exerciseOptions = []string{
	"Push-ups",
	"Plank",
	"Squats",
	"Burpees",
	"Jump rope",
	"Pull-ups",
}

// avatarPresets are the built-in avatar references cycled by CycleAvatar.
var avatarPresets = []string{"flame", "rocket", "trophy", "brain", "robot", "dragon"}

// weeklyFrequencyOptions are the suggested workouts-per-week choices for
// the group challenge.
var weeklyFrequencyOptions = []int{3, 4, 5, 6}

// SnapshotStore persists the auth snapshot. Writes are scheduled after
// every relevant mutation and never awaited; a failing store only costs
// durability, not correctness.
type SnapshotStore interface {
	SaveSnapshot(models.AuthSnapshot) error
	ClearSnapshot() error
}

// HistoryStore appends balance movements to the durable transaction log.
// Appends follow the same fire-and-forget contract as snapshots.
type HistoryStore interface {
	Append(models.LedgerEntry) error
}

// Options configures a new Engine. Zero values get sane defaults; nil
// stores disable the respective persistence concern.
type Options struct {
	Clock     clock.Clock
	Snapshots SnapshotStore
	History   HistoryStore
	// Restore seeds profile and balance from a previously stored
	// snapshot, as read once at startup.
	Restore *models.AuthSnapshot
	// Rand drives the weekly exercise pick. Defaults to a time-seeded
	// source.
	Rand *rand.Rand
}

type weekState struct {
	start        time.Time
	outcome      models.WeekOutcome
	participants []*models.Participant
	selfID       string
	exercises    []string
	frequency    int
}

// Engine is the single aggregate behind every operation. One mutex guards
// all state: callers may be concurrent (the HTTP layer is), and the
// non-negative balance invariant requires serialized mutations.
type Engine struct {
	mu  sync.Mutex
	clk clock.Clock
	rng *rand.Rand

	snapshots SnapshotStore
	history   HistoryStore

	// persistence writer: ops are enqueued under mu, so the single
	// consumer applies writes in mutation order.
	ops       chan func()
	opsDone   chan struct{}
	closeOnce sync.Once

	profile         models.Profile
	lastLoginChange *time.Time
	avatarIndex     int

	challenges []*models.PersonalChallenge
	habits     []*models.Habit
	week       weekState
}

// New builds an engine anchored to the current week.
func New(opts Options) *Engine {
	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(clk.Now().UnixNano()))
	}

	e := &Engine{
		clk:       clk,
		rng:       rng,
		snapshots: opts.Snapshots,
		history:   opts.History,
		ops:       make(chan func(), 64),
		opsDone:   make(chan struct{}),
	}
	go func() {
		defer close(e.opsDone)
		for op := range e.ops {
			op()
		}
	}()
	if s := opts.Restore; s != nil {
		e.profile = models.Profile{
			Authenticated: s.IsAuthenticated,
			LoginName:     s.LoginName,
			User:          s.RegisteredUser,
			AvatarRef:     s.AvatarRef,
			Balance:       s.Balance,
		}
	}
	e.resetWeekLocked()
	return e
}

// Close drains the persistence writer. Call it on shutdown so the last
// snapshot is not lost to process exit. After Close the engine must not
// be mutated.
func (e *Engine) Close() {
	e.closeOnce.Do(func() { close(e.ops) })
	<-e.opsDone
}

// Profile returns a copy of the current profile.
func (e *Engine) Profile() models.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile
}

// snapshotLocked builds the persistent view of the profile. Caller holds
// the mutex.
func (e *Engine) snapshotLocked() models.AuthSnapshot {
	snap := models.AuthSnapshot{
		IsAuthenticated: e.profile.Authenticated,
		LoginName:       e.profile.LoginName,
		Balance:         e.profile.Balance,
		AvatarRef:       e.profile.AvatarRef,
	}
	if e.profile.User != nil {
		u := *e.profile.User
		snap.RegisteredUser = &u
	}
	return snap
}

// schedulePersistLocked queues a snapshot write on the persistence
// writer. In-memory state is authoritative: a failed write is logged and
// otherwise swallowed.
func (e *Engine) schedulePersistLocked() {
	if e.snapshots == nil {
		return
	}
	snap := e.snapshotLocked()
	e.ops <- func() {
		if err := e.snapshots.SaveSnapshot(snap); err != nil {
			logger.Log.Warn("snapshot write failed", zap.Error(err))
		}
	}
}

// scheduleClearLocked queues a snapshot delete.
func (e *Engine) scheduleClearLocked() {
	if e.snapshots == nil {
		return
	}
	e.ops <- func() {
		if err := e.snapshots.ClearSnapshot(); err != nil {
			logger.Log.Warn("snapshot clear failed", zap.Error(err))
		}
	}
}

// recordLocked queues a balance movement for the history log.
func (e *Engine) recordLocked(amount int64, reason models.LedgerReason) {
	if e.history == nil {
		return
	}
	entry := models.LedgerEntry{
		Amount:       amount,
		BalanceAfter: e.profile.Balance,
		Reason:       reason,
	}
	e.ops <- func() {
		if err := e.history.Append(entry); err != nil {
			logger.Log.Warn("ledger append failed", zap.Error(err))
		}
	}
}

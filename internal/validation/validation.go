// Package validation holds the pure input checks for new personal
// challenges. It keeps no state and touches nothing outside its arguments.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Gangsta686/HabitForgeApp2/internal/models"
)

// Fixed bounds for a personal challenge.
const (
	RepsMin    = 1
	RepsMax    = 30
	SetsMin    = 1
	SetsMax    = 15
	PerWeekMin = 3
	PerWeekMax = 6
	StakeMin   = 500
	StakeMax   = 1500
)

// ChallengeCandidate carries the raw user input for a new challenge.
// Numeric fields arrive as text, the way the input layer produces them.
type ChallengeCandidate struct {
	Exercise string `json:"exercise"`
	RepsTime string `json:"repsTime"`
	Sets     string `json:"sets"`
	PerWeek  string `json:"perWeek"`
	Stake    string `json:"stake"`
	FailMode string `json:"failMode"`
}

// Error is a field-level rejection of a candidate.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Normalized is an accepted candidate with parsed numeric fields. The
// caller stamps id, timestamps and status.
type Normalized struct {
	Exercise string
	RepsTime string
	Sets     int
	PerWeek  int
	Stake    int64
	FailMode models.FailMode
}

// Challenge checks a candidate against the fixed bounds. Checks run in a
// fixed order and the first failure wins, so callers get one stable error
// per bad input.
func Challenge(c ChallengeCandidate) (*Normalized, error) {
	exercise := strings.TrimSpace(c.Exercise)
	if exercise == "" {
		return nil, &Error{Field: "exercise", Message: "exercise is required"}
	}

	repsTime := strings.TrimSpace(c.RepsTime)
	if repsTime == "" {
		return nil, &Error{Field: "repsTime", Message: "reps or time per set is required"}
	}
	if reps, err := strconv.Atoi(repsTime); err != nil || reps < RepsMin || reps > RepsMax {
		return nil, &Error{
			Field:   "repsTime",
			Message: fmt.Sprintf("reps per set must be %d-%d", RepsMin, RepsMax),
		}
	}

	sets, err := strconv.Atoi(strings.TrimSpace(c.Sets))
	if err != nil || sets < SetsMin || sets > SetsMax {
		return nil, &Error{
			Field:   "sets",
			Message: fmt.Sprintf("sets must be %d-%d", SetsMin, SetsMax),
		}
	}

	perWeek, err := strconv.Atoi(strings.TrimSpace(c.PerWeek))
	if err != nil || perWeek < PerWeekMin || perWeek > PerWeekMax {
		return nil, &Error{
			Field:   "perWeek",
			Message: fmt.Sprintf("workouts per week must be %d-%d", PerWeekMin, PerWeekMax),
		}
	}

	stake, err := strconv.ParseInt(strings.TrimSpace(c.Stake), 10, 64)
	if err != nil || stake < StakeMin || stake > StakeMax {
		return nil, &Error{
			Field:   "stake",
			Message: fmt.Sprintf("stake must be %d-%d", StakeMin, StakeMax),
		}
	}

	mode := models.FailMode(strings.TrimSpace(c.FailMode))
	if mode == "" {
		mode = models.FailModeCharity
	}
	if !mode.Valid() {
		return nil, &Error{Field: "failMode", Message: "fail mode must be charity or pool"}
	}

	return &Normalized{
		Exercise: exercise,
		RepsTime: repsTime,
		Sets:     sets,
		PerWeek:  perWeek,
		Stake:    stake,
		FailMode: mode,
	}, nil
}

// AllowedMisses is the number of week days a plan with the given frequency
// may skip, never negative.
func AllowedMisses(perWeek int) int {
	misses := 7 - perWeek
	if misses < 0 {
		return 0
	}
	return misses
}

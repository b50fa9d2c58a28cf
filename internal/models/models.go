package models

import "time"

// ChallengeStatus is the lifecycle state of a personal challenge.
type ChallengeStatus string

const (
	ChallengeActive  ChallengeStatus = "active"
	ChallengeSuccess ChallengeStatus = "success"
	ChallengeFail    ChallengeStatus = "fail"
)

// Valid reports whether s is one of the three known challenge states.
func (s ChallengeStatus) Valid() bool {
	switch s {
	case ChallengeActive, ChallengeSuccess, ChallengeFail:
		return true
	}
	return false
}

// FailMode says where the stake goes when a personal challenge is failed.
type FailMode string

const (
	FailModeCharity FailMode = "charity"
	FailModePool    FailMode = "pool"
)

func (m FailMode) Valid() bool {
	return m == FailModeCharity || m == FailModePool
}

// PersonalChallenge is an individually created exercise bet.
type PersonalChallenge struct {
	ID          string          `json:"id"`
	Exercise    string          `json:"exercise"`
	RepsTime    string          `json:"repsTime"`
	Sets        int             `json:"sets"`
	PerWeek     int             `json:"perWeek"`
	Stake       int64           `json:"stake"`
	FailMode    FailMode        `json:"failMode"`
	Status      ChallengeStatus `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

// ParticipantStatus is a group-week roster member's progress state.
type ParticipantStatus string

const (
	ParticipantInProgress ParticipantStatus = "in_progress"
	ParticipantSuccess    ParticipantStatus = "success"
	ParticipantFail       ParticipantStatus = "fail"
)

// Next returns the following status in the manual review cycle. The
// transition table is explicit so adding a state later cannot silently
// reorder the rotation.
func (s ParticipantStatus) Next() ParticipantStatus {
	switch s {
	case ParticipantInProgress:
		return ParticipantSuccess
	case ParticipantSuccess:
		return ParticipantFail
	case ParticipantFail:
		return ParticipantInProgress
	}
	return ParticipantInProgress
}

// Participant is one roster entry of the current group week. Self marks
// the local user's own entry; at most one per week carries it.
type Participant struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	JoinedAt time.Time         `json:"joinedAt"`
	Status   ParticipantStatus `json:"status"`
	Self     bool              `json:"self"`
}

// WeekOutcome is the finalized result of a group week. Empty while open.
type WeekOutcome string

const (
	OutcomeNone    WeekOutcome = ""
	OutcomeSuccess WeekOutcome = "success"
	OutcomeFail    WeekOutcome = "fail"
)

// WeekState is the derived phase of the group-week state machine.
type WeekState string

const (
	WeekOpen            WeekState = "open"
	WeekReadyToFinalize WeekState = "ready_to_finalize"
	WeekFinalized       WeekState = "finalized"
)

// Habit is a plain tracked habit with a completion counter.
type Habit struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RegisteredUser is the locally registered identity. Password holds the
// bcrypt hash; the engine never keeps the plaintext.
type RegisteredUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the local user's identity, balance and lifetime counters.
type Profile struct {
	Authenticated bool            `json:"authenticated"`
	LoginName     string          `json:"loginName"`
	User          *RegisteredUser `json:"user,omitempty"`
	AvatarRef     string          `json:"avatarRef,omitempty"`
	Balance       int64           `json:"balance"`
	CompletedDays int             `json:"completedDays"`
	FailedDays    int             `json:"failedDays"`
	TotalStaked   int64           `json:"totalStaked"`
	StakeEvents   int             `json:"stakeEvents"`
}

// AverageStake is the rounded mean of all amounts ever staked, 0 if none.
func (p Profile) AverageStake() int64 {
	if p.StakeEvents == 0 {
		return 0
	}
	half := int64(p.StakeEvents) / 2
	return (p.TotalStaked + half) / int64(p.StakeEvents)
}

// AuthSnapshot is the JSON blob kept under the single persistent-store key.
// Its shape is the stored contract: keep field names stable.
type AuthSnapshot struct {
	IsAuthenticated bool            `json:"isAuthenticated"`
	LoginName       string          `json:"loginName"`
	RegisteredUser  *RegisteredUser `json:"registeredUser,omitempty"`
	Balance         int64           `json:"balance"`
	AvatarRef       string          `json:"avatarRef,omitempty"`
}

package engine

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Gangsta686/HabitForgeApp2/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Register creates the local identity and signs it in. The password is
// stored bcrypt-hashed; the snapshot only ever sees the hash.
func (e *Engine) Register(name, email, password string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if len([]rune(name)) < MinLoginLength {
		return ErrLoginTooShort
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if password == "" {
		return ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile.User = &models.RegisteredUser{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	e.profile.LoginName = name
	e.profile.Authenticated = true
	e.schedulePersistLocked()
	return nil
}

// Login signs in with either the login name (exact) or the email
// (case-insensitive). Failures collapse into one generic error.
func (e *Engine) Login(login, password string) error {
	login = strings.TrimSpace(login)
	password = strings.TrimSpace(password)

	e.mu.Lock()
	defer e.mu.Unlock()

	user := e.profile.User
	if user == nil {
		return ErrNotRegistered
	}
	if login == "" || password == "" {
		return ErrInvalidCredentials
	}
	matches := login == user.Name || strings.EqualFold(login, user.Email)
	if !matches {
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return ErrInvalidCredentials
	}

	e.profile.LoginName = user.Name
	e.profile.Authenticated = true
	e.schedulePersistLocked()
	return nil
}

// Logout clears the authenticated flag and drops the stored snapshot.
func (e *Engine) Logout() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile.Authenticated = false
	e.scheduleClearLocked()
}

// Authenticated reports whether a user is signed in.
func (e *Engine) Authenticated() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.Authenticated
}

// ChangeLoginName renames the login. A rename is allowed at most once per
// cooldown period.
func (e *Engine) ChangeLoginName(next string) error {
	next = strings.TrimSpace(next)
	if next == "" {
		return ErrLoginRequired
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lastLoginChange != nil &&
		e.clk.Now().Sub(*e.lastLoginChange) < LoginChangeCooldown {
		return ErrCooldownActive
	}

	now := e.clk.Now()
	e.profile.LoginName = next
	e.lastLoginChange = &now
	e.schedulePersistLocked()
	return nil
}

// LoginChangeDaysLeft reports how many whole days remain before the login
// name may change again: 0 when a change is currently allowed.
func (e *Engine) LoginChangeDaysLeft() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lastLoginChange == nil {
		return 0
	}
	elapsed := e.clk.Now().Sub(*e.lastLoginChange)
	if elapsed >= LoginChangeCooldown {
		return 0
	}
	return int((LoginChangeCooldown - elapsed + 24*time.Hour - 1) / (24 * time.Hour))
}

// SetAvatarRef stores a free-form avatar reference.
func (e *Engine) SetAvatarRef(ref string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile.AvatarRef = strings.TrimSpace(ref)
	e.schedulePersistLocked()
}

// CycleAvatar steps through the built-in avatar presets and returns the
// selected one.
func (e *Engine) CycleAvatar() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.avatarIndex = (e.avatarIndex + 1) % len(avatarPresets)
	e.profile.AvatarRef = avatarPresets[e.avatarIndex]
	e.schedulePersistLocked()
	return e.profile.AvatarRef
}

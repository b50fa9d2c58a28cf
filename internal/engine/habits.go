package engine

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Gangsta686/HabitForgeApp2/internal/models"
)

// AddHabit creates a plain tracked habit, newest first.
func (e *Engine) AddHabit(title, description string) (models.Habit, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Habit{}, ErrTitleRequired
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	h := &models.Habit{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedAt:   e.clk.Now(),
	}
	e.habits = append([]*models.Habit{h}, e.habits...)
	return *h, nil
}

// IncrementHabit bumps a habit's progress. Each completion also counts as
// a completed day on the profile.
func (e *Engine) IncrementHabit(id string) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, h := range e.habits {
		if h.ID != id {
			continue
		}
		h.Progress++
		e.profile.CompletedDays++
		return *h, nil
	}
	return models.Habit{}, ErrHabitNotFound
}

// Habits returns the habit list, newest first.
func (e *Engine) Habits() []models.Habit {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.Habit, 0, len(e.habits))
	for _, h := range e.habits {
		out = append(out, *h)
	}
	return out
}

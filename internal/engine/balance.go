package engine

import "github.com/Gangsta686/HabitForgeApp2/internal/models"

// Credit adds a positive amount to the balance unconditionally.
func (e *Engine) Credit(amount int64, reason models.LedgerReason) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.creditLocked(amount, reason)
}

// Debit subtracts a positive amount, refusing any debit that would push
// the balance below zero. A rejected debit changes nothing.
func (e *Engine) Debit(amount int64, reason models.LedgerReason) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.debitLocked(amount, reason)
}

// TopUp credits the balance from the user's own pocket and returns the
// new balance.
func (e *Engine) TopUp(amount int64) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.creditLocked(amount, models.ReasonTopUp); err != nil {
		return e.profile.Balance, err
	}
	return e.profile.Balance, nil
}

// Balance returns the current balance.
func (e *Engine) Balance() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.Balance
}

// creditLocked and debitLocked are the only two places that touch the
// balance field. Every successful movement lands in the history log and
// refreshes the durable snapshot.

func (e *Engine) creditLocked(amount int64, reason models.LedgerReason) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	e.profile.Balance += amount
	e.recordLocked(amount, reason)
	e.schedulePersistLocked()
	return nil
}

func (e *Engine) debitLocked(amount int64, reason models.LedgerReason) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if e.profile.Balance-amount < 0 {
		return ErrInsufficientFunds
	}
	e.profile.Balance -= amount
	e.recordLocked(-amount, reason)
	e.schedulePersistLocked()
	return nil
}

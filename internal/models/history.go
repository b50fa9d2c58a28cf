package models

import "gorm.io/gorm"

// LedgerReason labels why a balance movement happened.
type LedgerReason string

const (
	ReasonEntryFee    LedgerReason = "entry_fee"
	ReasonStakeReturn LedgerReason = "stake_return"
	ReasonTopUp       LedgerReason = "top_up"
)

// LedgerEntry is one recorded balance movement. Amount is signed: debits
// are negative, credits positive. BalanceAfter is the balance the entry
// left behind.
type LedgerEntry struct {
	gorm.Model
	Amount       int64        `gorm:"not null" json:"amount"`
	BalanceAfter int64        `gorm:"not null" json:"balanceAfter"`
	Reason       LedgerReason `gorm:"size:32;index" json:"reason"`
}

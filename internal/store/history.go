package store

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/Gangsta686/HabitForgeApp2/internal/models"
)

// History is the sqlite-backed transaction log of balance movements.
type History struct {
	db *gorm.DB
}

// OpenHistory opens the sqlite database at path and runs migrations.
// Use ":memory:" for an ephemeral log.
func OpenHistory(path string) (*History, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.LedgerEntry{}); err != nil {
		return nil, err
	}
	return &History{db: db}, nil
}

// Close closes the underlying connection pool.
func (h *History) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Append records one balance movement.
func (h *History) Append(entry models.LedgerEntry) error {
	return h.db.Create(&entry).Error
}

// Entries returns up to limit movements, newest first. A non-positive
// limit returns everything.
func (h *History) Entries(limit int) ([]models.LedgerEntry, error) {
	q := h.db.Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var entries []models.LedgerEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

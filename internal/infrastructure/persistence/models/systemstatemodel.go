package models

import "time"

// SystemStateID is the fixed primary key of the singleton ledger row.
const SystemStateID uint = 1

// SystemStateModel is the GORM model for the system_state table. The table
// holds exactly one row; every mutation goes through the repository's
// transactional operations so the counters stay serialized.
type SystemStateModel struct {
	ID             uint      `gorm:"primaryKey"`
	CurrentServing int       `gorm:"not null;default:1"`
	LastIssued     int       `gorm:"not null;default:0"`
	Generation     int       `gorm:"not null;default:1"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime;not null"`
}

func (SystemStateModel) TableName() string {
	return "system_state"
}

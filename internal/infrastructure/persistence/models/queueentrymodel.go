package models

import "time"

// QueueEntryModel is the GORM model for the queue_entries table. Status is
// deliberately not a column: it is derived from system_state on read.
type QueueEntryModel struct {
	ID        uint    `gorm:"primaryKey"`
	Number    int     `gorm:"uniqueIndex:uk_queue_entries_number;not null"`
	Name      string  `gorm:"size:50;not null"`
	Email     *string `gorm:"uniqueIndex:uk_queue_entries_email;size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
}

func (QueueEntryModel) TableName() string {
	return "queue_entries"
}

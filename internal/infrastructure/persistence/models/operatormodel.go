package models

import "time"

type OperatorModel struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex:uk_operators_username;size:50;not null"`
	PasswordHash string    `gorm:"size:100;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime;not null"`
}

func (OperatorModel) TableName() string {
	return "operators"
}

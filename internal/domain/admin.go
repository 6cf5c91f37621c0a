package domain

import "time"

type Admin struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminIdentity is the authenticated caller of an admin operation.
type AdminIdentity struct {
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
}

func (a AdminIdentity) IsZero() bool {
	return a.AdminID <= 0
}

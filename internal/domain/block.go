package domain

import "time"

// MaintenanceBlock marks a cabin unavailable over [FromDate, ToDate).
// Dates are canonical YYYY-MM-DD strings.
type MaintenanceBlock struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CabinID   int64     `json:"cabin_id" gorm:"not null;index:idx_blocks_cabin_from,priority:1"`
	FromDate  string    `json:"from_date" gorm:"type:varchar(10);not null;index:idx_blocks_cabin_from,priority:2"`
	ToDate    string    `json:"to_date" gorm:"type:varchar(10);not null;index;check:chk_blocks_range,to_date > from_date"`
	Reason    *string   `json:"reason" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`

	Cabin *Cabin `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (MaintenanceBlock) TableName() string { return "blocks" }

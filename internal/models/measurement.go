package models

import (
	"time"

	"gorm.io/gorm"
)

// Measurement 对应 measurements 表，体重/身高至少有一项
type Measurement struct {
	ID              uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BabyID          uint64     `gorm:"not null;index" json:"baby_id"`
	MeasurementDate time.Time  `gorm:"type:date;not null;index" json:"measurement_date"`
	WeightKg        *float64   `gorm:"type:decimal(5,2)" json:"weight_kg,omitempty"`
	HeightCm        *float64   `gorm:"type:decimal(5,1)" json:"height_cm,omitempty"`
	Notes           *string    `gorm:"type:varchar(500)" json:"notes,omitempty"`
	RecordedBy      uint64     `gorm:"not null" json:"recorded_by"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName 指定 GORM 使用的表名
func (Measurement) TableName() string {
	return "measurements"
}

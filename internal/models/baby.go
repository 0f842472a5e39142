package models

import (
	"time"

	"gorm.io/gorm"
)

// Baby 对应 babies 表，一条宝宝档案就是一条时间线
type Baby struct {
	ID              uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string     `gorm:"type:varchar(64);not null" json:"name"`
	Birthdate       time.Time  `gorm:"type:date;not null" json:"birthdate"`
	ProfilePhotoURL *string    `gorm:"type:varchar(1024)" json:"profile_photo_url,omitempty"`
	CreatedBy       uint64     `gorm:"not null;index" json:"created_by"` // 创建者（管理员）ID

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName 指定 GORM 使用的表名
func (Baby) TableName() string {
	return "babies"
}

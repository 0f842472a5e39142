package models

import (
	"time"

	"gorm.io/gorm"
)

// Photo 对应 photos 表
// ObjectKey 是对象存储中的路径（babyID/YYYY/MM/时间戳_文件名.jpg），
// FileURL 是最近一次生成的预签名访问地址，过期后可以重新生成。
type Photo struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BabyID     uint64     `gorm:"not null;index" json:"baby_id"`
	ObjectKey  string     `gorm:"type:varchar(512);not null;uniqueIndex" json:"-"`
	FileURL    string     `gorm:"type:varchar(2048);not null" json:"file_url"`
	Caption    *string    `gorm:"type:varchar(500)" json:"caption,omitempty"`
	PhotoDate  time.Time  `gorm:"type:date;not null;index" json:"photo_date"`
	SizeBytes  int64      `gorm:"not null;default:0" json:"size_bytes"`
	Width      int        `gorm:"not null;default:0" json:"width"`
	Height     int        `gorm:"not null;default:0" json:"height"`
	UploadedBy uint64     `gorm:"not null" json:"uploaded_by"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Baby *Baby `gorm:"foreignKey:BabyID" json:"-"`
}

// TableName 指定 GORM 使用的表名
func (Photo) TableName() string {
	return "photos"
}

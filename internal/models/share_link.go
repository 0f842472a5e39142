package models

import (
	"time"
)

// ShareLink 对应 share_links 表
// 同一个宝宝最多只有一条 is_active=true 的记录，重新生成链接会先让旧链接失效。
// 记录从不物理删除，保留作为审计历史。
type ShareLink struct {
	ID           uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BabyID       uint64     `gorm:"not null;index:idx_baby_active,priority:1" json:"baby_id"`
	Token        string     `gorm:"type:varchar(36);unique;not null" json:"token"` // UUID v4，128位随机
	PasswordHash *string    `gorm:"type:varchar(255);default:null" json:"-"`       // - 表示不输出到 JSON
	IsActive     bool       `gorm:"not null;default:true;index:idx_baby_active,priority:2" json:"is_active"`
	ExpiresAt    *time.Time `gorm:"default:null" json:"expires_at,omitempty"`
	CreatedBy    uint64     `gorm:"not null" json:"created_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Baby *Baby `gorm:"foreignKey:BabyID" json:"-"`
}

// TableName 指定 GORM 使用的表名
func (ShareLink) TableName() string {
	return "share_links"
}

// HasPassword 判断链接是否设置了访问密码
func (l *ShareLink) HasPassword() bool {
	return l.PasswordHash != nil && *l.PasswordHash != ""
}

// IsExpired 判断链接是否已过期（未设置过期时间视为永久有效）
func (l *ShareLink) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}

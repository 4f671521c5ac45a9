package model

import "time"

// 出店イベント（市場・フェアなど）
type Event struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Address   string    `gorm:"type:varchar(255);not null;default:''" json:"address"`
	MapsURL   string    `gorm:"column:maps_url;type:text;not null;default:''" json:"maps_url"`
	ImageURL  string    `gorm:"type:text;not null;default:''" json:"image_url"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

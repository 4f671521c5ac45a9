package model

import "time"

type Recipe struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	Content    string    `gorm:"type:text;not null;default:''" json:"content"`
	ImageURL   string    `gorm:"type:text;not null;default:''" json:"image_url"`
	YouTubeURL string    `gorm:"column:youtube_url;type:text;not null;default:''" json:"youtube_url"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

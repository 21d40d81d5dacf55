package model

import "time"

type Review struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Rating    int    `gorm:"not null" json:"rating"`
	Comment   string `gorm:"not null" json:"comment"`
	UserID    string `gorm:"index;not null" json:"userId"`
	ProductID uint   `gorm:"index;not null" json:"productId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

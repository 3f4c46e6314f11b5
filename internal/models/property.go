package models

import "gorm.io/gorm"

// Property represents a building or estate owned by a user.
type Property struct {
	gorm.Model
	Name    string  `json:"name" gorm:"not null"`
	Address string  `json:"address" gorm:"not null"`
	Town    string  `json:"town"`
	County  string  `json:"county"`
	Type    string  `json:"type"`
	UserID  uint    `json:"user_id"`
	User    *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Units   []*Unit `json:"units,omitempty" gorm:"foreignKey:PropertyID"`
}

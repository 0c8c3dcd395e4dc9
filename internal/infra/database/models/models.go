package models

import "time"

// Entity is the persisted form of a managed entity.
type Entity struct {
	ID         string    `json:"id" gorm:"type:char(36);primaryKey"`
	Type       string    `json:"type" gorm:"type:text;not null;index"`
	OwnerID    *string   `json:"ownerId" gorm:"type:char(36);default:null"`
	Visibility int       `json:"visibility" gorm:"type:integer;default:0"`
	Access     int       `json:"access" gorm:"type:integer;default:0"`
	Name       string    `json:"name" gorm:"type:text;not null;index"`
	Creation   time.Time `json:"creation" gorm:"type:timestamp with time zone;not null"`
}

// Account is the persisted form of an identity.
type Account struct {
	ID       string    `json:"id" gorm:"type:char(36);primaryKey"`
	Type     string    `json:"type" gorm:"type:text;not null;index"`
	Account  string    `json:"account" gorm:"type:text;not null;index"`
	Creation time.Time `json:"creation" gorm:"type:timestamp with time zone;not null"`
}

// Member is the persisted relation between one account and one entity.
// Uniqueness of (entity_id, account_id) is enforced by the creation protocol,
// not by a storage constraint.
type Member struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	EntityID  string    `json:"entityId" gorm:"type:char(36);not null;index"`
	AccountID string    `json:"accountId" gorm:"type:char(36);not null;index"`
	Status    string    `json:"status" gorm:"type:text;not null"`
	Level     int       `json:"level" gorm:"type:integer;not null"`
	Creation  time.Time `json:"creation" gorm:"type:timestamp with time zone;not null"`
}

// EntityType is one registered (interface, type) -> class row.
type EntityType struct {
	ID        uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Interface string `json:"interface" gorm:"type:text;not null;index"`
	Type      string `json:"type" gorm:"type:text;not null"`
	Class     string `json:"class" gorm:"type:text;not null"`
}

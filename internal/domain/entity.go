package domain

import "time"

// Entity is a generic owned/typed object (a group, a circle, a project)
// without persistence concerns. The ID is immutable once persisted.
type Entity struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	OwnerID    string     `json:"ownerId,omitempty"`
	Owner      *Account   `json:"owner,omitempty"`
	Visibility Visibility `json:"visibility"`
	Access     Access     `json:"access"`
	Name       string     `json:"name"`
	Creation   time.Time  `json:"creation"`
}

// Account is an identity capable of owning entities and holding memberships.
// The Account field is an opaque identity string; for the local_user type it
// maps to a local user id.
type Account struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Account  string    `json:"account"`
	Creation time.Time `json:"creation"`
}

// Member links one Account to one Entity with a status and an access level.
type Member struct {
	ID        string       `json:"id"`
	EntityID  string       `json:"entityId"`
	AccountID string       `json:"accountId"`
	Status    MemberStatus `json:"status"`
	Level     MemberLevel  `json:"level"`
	Creation  time.Time    `json:"creation"`
}

// EntityType maps an (interface, type tag) pair to the class locator of the
// plugin implementation governing that type. Definitions are registered at
// installation time and are read-only at runtime; materialized instances are
// cached by the extension registry, not on the record.
type EntityType struct {
	ID        uint   `json:"id"`
	Interface string `json:"interface"`
	Type      string `json:"type"`
	Class     string `json:"class"`
}

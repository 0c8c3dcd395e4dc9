// Package group is the built-in "group" entity type: a flat, named
// collection of accounts. Two groups of the same type duplicate each other
// when their names match, creation is auto-approved, and admin rights start
// at the Admin level.
package group

import (
	"github.com/hiraeth-dev/entities/internal/domain"
	"github.com/hiraeth-dev/entities/internal/extension"
)

// TypeTag and Class are the values under which this plugin registers.
const (
	TypeTag = "group"
	Class   = "entities.plugins.group"
)

type Group struct{}

func New() *Group {
	return &Group{}
}

func (p *Group) BuildSearchDuplicate(q extension.Query, entity *domain.Entity) {
	q.LimitToType(TypeTag)
	q.LimitToField("name", entity.Name)
}

func (p *Group) ConfirmCreationStatus(entity *domain.Entity) error {
	if entity.Visibility == domain.VisibilityNone {
		entity.Visibility = domain.VisibilityMembers
	}
	return nil
}

func (p *Group) HasAdminRights(entity *domain.Entity, member *domain.Member) bool {
	if member.Status != domain.MemberStatusMember {
		return false
	}
	return member.Level >= domain.MemberLevelAdmin
}

func (p *Group) BuildSearch(q extension.Query, needle string) {
	q.LimitToType(TypeTag)
	q.SearchInField("name", needle)
}

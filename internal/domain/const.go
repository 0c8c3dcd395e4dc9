package domain

// Interface names under which type plugins register.
const (
	InterfaceEntities         = "IEntities"
	InterfaceEntitiesAccounts = "IEntitiesAccounts"
	InterfaceEntitiesMembers  = "IEntitiesMembers"
	InterfaceEntitiesTypes    = "IEntitiesTypes"
)

// Visibility controls who can see an entity.
type Visibility int

const (
	VisibilityNone Visibility = iota
	VisibilityMembers
	VisibilityAll
)

// Access controls how accounts join an entity.
type Access int

const (
	AccessFree Access = iota
	AccessInvite
	AccessLocked
)

// MemberStatus is the state of an account's relationship to an entity. Only
// MemberStatusMember counts for the duplicate check on member creation.
type MemberStatus string

const (
	MemberStatusMember     MemberStatus = "member"
	MemberStatusInvited    MemberStatus = "invited"
	MemberStatusRequesting MemberStatus = "request"
)

// MemberLevel is the access level a member holds within an entity.
type MemberLevel int

const (
	MemberLevelViewer    MemberLevel = 1
	MemberLevelMember    MemberLevel = 2
	MemberLevelModerator MemberLevel = 4
	MemberLevelAdmin     MemberLevel = 8
	MemberLevelOwner     MemberLevel = 9
)

func (l MemberLevel) String() string {
	switch l {
	case MemberLevelViewer:
		return "Viewer"
	case MemberLevelMember:
		return "Member"
	case MemberLevelModerator:
		return "Moderator"
	case MemberLevelAdmin:
		return "Admin"
	case MemberLevelOwner:
		return "Owner"
	default:
		return "Unknown"
	}
}

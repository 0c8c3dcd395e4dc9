package group

import (
	"testing"

	"github.com/hiraeth-dev/entities/internal/domain"
)

type recordingQuery struct {
	eq    map[string]any
	likes map[string]string
}

func newRecordingQuery() *recordingQuery {
	return &recordingQuery{eq: map[string]any{}, likes: map[string]string{}}
}

func (q *recordingQuery) LimitToID(id string)                { q.eq["id"] = id }
func (q *recordingQuery) LimitToType(typeTag string)         { q.eq["type"] = typeTag }
func (q *recordingQuery) LimitToField(field string, v any)   { q.eq[field] = v }
func (q *recordingQuery) SearchInField(field, needle string) { q.likes[field] = needle }

func TestBuildSearchDuplicateMatchesOnName(t *testing.T) {
	q := newRecordingQuery()
	New().BuildSearchDuplicate(q, &domain.Entity{Type: TypeTag, Name: "Engineering"})

	if q.eq["type"] != TypeTag {
		t.Fatalf("expected type filter, got %v", q.eq)
	}
	if q.eq["name"] != "Engineering" {
		t.Fatalf("expected name filter, got %v", q.eq)
	}
}

func TestConfirmCreationDefaultsVisibility(t *testing.T) {
	entity := domain.Entity{Type: TypeTag, Name: "Engineering"}
	if err := New().ConfirmCreationStatus(&entity); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if entity.Visibility != domain.VisibilityMembers {
		t.Fatalf("expected members visibility, got %v", entity.Visibility)
	}

	entity.Visibility = domain.VisibilityAll
	if err := New().ConfirmCreationStatus(&entity); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if entity.Visibility != domain.VisibilityAll {
		t.Fatal("expected explicit visibility to be kept")
	}
}

func TestHasAdminRights(t *testing.T) {
	entity := domain.Entity{Type: TypeTag}
	plugin := New()

	member := domain.Member{Status: domain.MemberStatusMember, Level: domain.MemberLevelAdmin}
	if !plugin.HasAdminRights(&entity, &member) {
		t.Fatal("expected admin level to confer rights")
	}

	member.Level = domain.MemberLevelModerator
	if plugin.HasAdminRights(&entity, &member) {
		t.Fatal("expected moderator level to be denied")
	}

	member.Level = domain.MemberLevelOwner
	member.Status = domain.MemberStatusRequesting
	if plugin.HasAdminRights(&entity, &member) {
		t.Fatal("expected non-member status to be denied")
	}
}

func TestBuildSearch(t *testing.T) {
	q := newRecordingQuery()
	New().BuildSearch(q, "eng")

	if q.eq["type"] != TypeTag {
		t.Fatalf("expected search scoped to the type, got %v", q.eq)
	}
	if q.likes["name"] != "eng" {
		t.Fatalf("expected name substring search, got %v", q.likes)
	}
}

package repository

import (
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hiraeth-dev/entities/internal/infra/database/models"
)

// newDryRunDB opens a postgres dialector without connecting; DryRun sessions
// only build SQL, so the generated statements can be inspected offline.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open dry-run db: %v", err)
	}
	return db
}

func TestQueryFieldFilters(t *testing.T) {
	db := newDryRunDB(t)

	q := NewSelectQuery(db, "entities")
	q.LimitToType("group")
	q.LimitToField("name", "Engineering")

	var rows []models.Entity
	stmt := q.tx.Find(&rows).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "entities.type = $") {
		t.Fatalf("expected type filter, got: %s", sql)
	}
	if !strings.Contains(sql, "entities.name = $") {
		t.Fatalf("expected name filter, got: %s", sql)
	}
	if len(stmt.Vars) != 2 || stmt.Vars[0] != "group" || stmt.Vars[1] != "Engineering" {
		t.Fatalf("unexpected vars: %v", stmt.Vars)
	}
}

func TestQuerySearchInFieldEscapesNeedle(t *testing.T) {
	db := newDryRunDB(t)

	q := NewSelectQuery(db, "entities")
	q.SearchInField("name", "50%_off")

	var rows []models.Entity
	stmt := q.tx.Find(&rows).Statement

	if !strings.Contains(stmt.SQL.String(), "entities.name LIKE $") {
		t.Fatalf("expected LIKE filter, got: %s", stmt.SQL.String())
	}
	if len(stmt.Vars) != 1 || stmt.Vars[0] != `%50\%\_off%` {
		t.Fatalf("expected escaped needle, got: %v", stmt.Vars)
	}
}

func TestQueryLeftJoinEntity(t *testing.T) {
	db := newDryRunDB(t)

	q := NewSelectQuery(db, "members")
	q.LimitToField("account_id", "a1")
	q.LeftJoinEntity()

	var rows []map[string]any
	stmt := q.tx.Find(&rows).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "LEFT JOIN entities ON entities.id = members.entity_id") {
		t.Fatalf("expected entity join, got: %s", sql)
	}
	if !strings.Contains(sql, "entities.name AS entity_name") {
		t.Fatalf("expected aliased entity columns, got: %s", sql)
	}
	// members.* already carries entity_id; re-projecting entities.id under
	// the same name would produce a duplicate column.
	if strings.Contains(sql, "AS entity_id") {
		t.Fatalf("expected joined id not to be re-projected, got: %s", sql)
	}
}

func TestQueryLeftJoinAccount(t *testing.T) {
	db := newDryRunDB(t)

	q := NewSelectQuery(db, "entities")
	q.LeftJoinAccount()

	var rows []entityOwnerRow
	stmt := q.tx.Find(&rows).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "LEFT JOIN accounts ON accounts.id = entities.owner_id") {
		t.Fatalf("expected account join, got: %s", sql)
	}
	if !strings.Contains(sql, "accounts.account AS account_account") {
		t.Fatalf("expected aliased account columns, got: %s", sql)
	}
}

func TestQueryJoinNoopOnDelete(t *testing.T) {
	db := newDryRunDB(t)

	q := NewDeleteQuery(db, "members")
	q.LimitToID("m1")
	q.LeftJoinEntity()
	q.LeftJoinAccount()

	stmt := q.tx.Delete(&models.Member{}).Statement

	sql := stmt.SQL.String()
	if strings.Contains(sql, "LEFT JOIN") {
		t.Fatalf("expected joins to be no-ops on delete, got: %s", sql)
	}
	if !strings.Contains(sql, "members.id = $") {
		t.Fatalf("expected id filter, got: %s", sql)
	}
}

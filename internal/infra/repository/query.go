package repository

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Aliasing prefixes under which the left-join helpers project joined columns.
const (
	entityJoinPrefix  = "entity_"
	accountJoinPrefix = "account_"
)

// Query decorates a gorm statement over one table with domain filter helpers
// and pre-defined left joins. It implements extension.Query, so type plugins
// can contribute predicates without seeing the persistence layer.
type Query struct {
	tx       *gorm.DB
	table    string
	isSelect bool
}

// NewSelectQuery starts a select statement over the given table.
func NewSelectQuery(db *gorm.DB, table string) *Query {
	return &Query{tx: db.Table(table), table: table, isSelect: true}
}

// NewDeleteQuery starts a delete statement over the given table. Join helpers
// are no-ops on it.
func NewDeleteQuery(db *gorm.DB, table string) *Query {
	return &Query{tx: db.Table(table), table: table}
}

func (q *Query) LimitToID(id string) {
	q.LimitToField("id", id)
}

func (q *Query) LimitToType(typeTag string) {
	q.LimitToField("type", typeTag)
}

func (q *Query) LimitToField(field string, value any) {
	q.tx = q.tx.Where(q.table+"."+field+" = ?", value)
}

// SearchInField adds a substring match on the field. The needle is escaped so
// LIKE metacharacters in user input match literally.
func (q *Query) SearchInField(field string, needle string) {
	q.tx = q.tx.Where(q.table+"."+field+" LIKE ?", "%"+escapeLike(needle)+"%")
}

// LeftJoinEntity joins the owning entity of a row carrying an entity_id
// column and projects its columns under the entity_ prefix. The joined id is
// not re-projected: the host row's entity_id column already carries it, and
// aliasing entities.id as entity_id would collide with it. No-op on
// non-select statements.
func (q *Query) LeftJoinEntity() {
	if !q.isSelect {
		return
	}
	q.tx = q.tx.
		Select(q.table + ".*" +
			", entities.type AS " + entityJoinPrefix + "type" +
			", entities.name AS " + entityJoinPrefix + "name" +
			", entities.visibility AS " + entityJoinPrefix + "visibility" +
			", entities.access AS " + entityJoinPrefix + "access" +
			", entities.creation AS " + entityJoinPrefix + "creation").
		Joins("LEFT JOIN entities ON entities.id = " + q.table + ".entity_id")
}

// LeftJoinAccount joins the owning account of a row carrying an owner_id
// column and projects its columns under the account_ prefix. No-op on
// non-select statements.
func (q *Query) LeftJoinAccount() {
	if !q.isSelect {
		return
	}
	q.tx = q.tx.
		Select(q.table + ".*" +
			", accounts.id AS " + accountJoinPrefix + "id" +
			", accounts.type AS " + accountJoinPrefix + "type" +
			", accounts.account AS " + accountJoinPrefix + "account" +
			", accounts.creation AS " + accountJoinPrefix + "creation").
		Joins("LEFT JOIN accounts ON accounts.id = " + q.table + ".owner_id")
}

// Run executes the statement into dest, recording elapsed time. Timing is
// diagnostics only and never alters the result.
func (q *Query) Run(ctx context.Context, dest any) error {
	start := time.Now()
	err := q.tx.WithContext(ctx).Find(dest).Error
	q.logTiming("find", start)
	return err
}

// First executes the statement into dest, returning gorm.ErrRecordNotFound
// when no row matches.
func (q *Query) First(ctx context.Context, dest any) error {
	start := time.Now()
	err := q.tx.WithContext(ctx).First(dest).Error
	q.logTiming("first", start)
	return err
}

func (q *Query) logTiming(op string, start time.Time) {
	slog.Debug("query executed",
		slog.String("table", q.table),
		slog.String("op", op),
		slog.Duration("elapsed", time.Since(start)),
		slog.String("module", "repository"),
	)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

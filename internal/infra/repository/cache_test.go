package repository

import (
	"context"
	"testing"

	"github.com/hiraeth-dev/entities/internal/domain"
	"github.com/hiraeth-dev/entities/internal/extension"
)

type mapCache struct {
	entries map[string][]byte
	sets    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte) {
	c.entries[key] = value
	c.sets++
}

type countingAccounts struct {
	rows  []domain.Account
	reads int
}

func (m *countingAccounts) Create(ctx context.Context, account *domain.Account) error {
	m.rows = append(m.rows, *account)
	return nil
}

func (m *countingAccounts) GetAll(ctx context.Context, typeTag string) ([]domain.Account, error) {
	return m.rows, nil
}

func (m *countingAccounts) GetFromID(ctx context.Context, id string) (domain.Account, error) {
	m.reads++
	for _, row := range m.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return domain.Account{}, domain.ErrAccountNotFound
}

func (m *countingAccounts) GetFromLocalUserID(ctx context.Context, userID string) (domain.Account, error) {
	m.reads++
	for _, row := range m.rows {
		if row.Account == userID {
			return row, nil
		}
	}
	return domain.Account{}, domain.ErrAccountNotFound
}

func (m *countingAccounts) Search(ctx context.Context, needle, typeTag string, plugins []extension.AccountSearch) ([]domain.Account, error) {
	return m.rows, nil
}

func (m *countingAccounts) NewSelectQuery() extension.Query { return nil }

func (m *countingAccounts) MaterializeOne(ctx context.Context, q extension.Query) (domain.Account, error) {
	return domain.Account{}, domain.ErrAccountNotFound
}

func TestCachedAccountsReadThrough(t *testing.T) {
	inner := &countingAccounts{rows: []domain.Account{
		{ID: "a1", Type: "local_user", Account: "alice"},
	}}
	cache := newMapCache()
	cached := NewCachedAccounts(inner, cache)

	for i := 0; i < 3; i++ {
		account, err := cached.GetFromID(context.Background(), "a1")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if account.Account != "alice" {
			t.Fatalf("unexpected account: %+v", account)
		}
	}

	if inner.reads != 1 {
		t.Fatalf("expected a single backing read, got %d", inner.reads)
	}
	if cache.sets != 1 {
		t.Fatalf("expected a single cache fill, got %d", cache.sets)
	}
}

func TestCachedAccountsMissIsNotCached(t *testing.T) {
	inner := &countingAccounts{}
	cached := NewCachedAccounts(inner, newMapCache())

	for i := 0; i < 2; i++ {
		_, err := cached.GetFromLocalUserID(context.Background(), "nobody")
		if err == nil {
			t.Fatal("expected a not-found error")
		}
	}

	if inner.reads != 2 {
		t.Fatalf("expected misses to reach the backend, got %d reads", inner.reads)
	}
}

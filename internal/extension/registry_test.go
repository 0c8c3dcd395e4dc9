package extension

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hiraeth-dev/entities/internal/domain"
)

type staticTypes struct {
	defs  []domain.EntityType
	calls int
}

func (s *staticTypes) GetAllRegisteredTypes(ctx context.Context) ([]domain.EntityType, error) {
	s.calls++
	return s.defs, nil
}

type dupOnly struct{}

func (p *dupOnly) BuildSearchDuplicate(q Query, entity *domain.Entity) {}

type dupAndAdmin struct{}

func (p *dupAndAdmin) BuildSearchDuplicate(q Query, entity *domain.Entity) {}
func (p *dupAndAdmin) HasAdminRights(entity *domain.Entity, member *domain.Member) bool {
	return true
}

func newTestRegistry(defs []domain.EntityType) (*Registry, *staticTypes, *FactoryLocator) {
	source := &staticTypes{defs: defs}
	locator := NewFactoryLocator()
	return NewRegistry(source, locator), source, locator
}

func TestResolveReturnsCapability(t *testing.T) {
	reg, _, locator := newTestRegistry([]domain.EntityType{
		{Interface: domain.InterfaceEntities, Type: "circle", Class: "test.circle"},
	})
	locator.Register("test.circle", func() any { return &dupAndAdmin{} })

	plugin, err := Resolve[EntitySearchDuplicate](context.Background(), reg, domain.InterfaceEntities, "circle")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if plugin == nil {
		t.Fatal("expected plugin instance")
	}
}

func TestResolveUnregisteredType(t *testing.T) {
	reg, _, _ := newTestRegistry(nil)

	_, err := Resolve[EntitySearchDuplicate](context.Background(), reg, domain.InterfaceEntities, "widget")
	if !errors.Is(err, domain.ErrTypeNotFound) {
		t.Fatalf("expected TypeNotFound, got %v", err)
	}
}

func TestResolveConstructionFailure(t *testing.T) {
	// No factory registered for the class: materialization fails and is
	// indistinguishable from an unregistered type.
	reg, _, _ := newTestRegistry([]domain.EntityType{
		{Interface: domain.InterfaceEntities, Type: "circle", Class: "test.broken"},
	})

	_, err := Resolve[EntitySearchDuplicate](context.Background(), reg, domain.InterfaceEntities, "circle")
	if !errors.Is(err, domain.ErrTypeNotFound) {
		t.Fatalf("expected TypeNotFound, got %v", err)
	}
}

func TestResolveMissingCapability(t *testing.T) {
	reg, _, locator := newTestRegistry([]domain.EntityType{
		{Interface: domain.InterfaceEntities, Type: "circle", Class: "test.circle"},
	})
	locator.Register("test.circle", func() any { return &dupOnly{} })

	_, err := Resolve[EntityAdminRights](context.Background(), reg, domain.InterfaceEntities, "circle")
	if !errors.Is(err, domain.ErrImplementationNotFound) {
		t.Fatalf("expected ImplementationNotFound, got %v", err)
	}

	var impl domain.ImplementationNotFoundError
	if !errors.As(err, &impl) {
		t.Fatalf("expected ImplementationNotFoundError, got %T", err)
	}
	if impl.Instance == "" || impl.Capability == "" {
		t.Fatalf("expected instance and capability names, got %+v", impl)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	reg, source, locator := newTestRegistry([]domain.EntityType{
		{Interface: domain.InterfaceEntities, Type: "circle", Class: "test.circle"},
	})
	constructions := 0
	locator.Register("test.circle", func() any {
		constructions++
		return &dupAndAdmin{}
	})

	first, err := Resolve[EntitySearchDuplicate](context.Background(), reg, domain.InterfaceEntities, "circle")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	second, err := Resolve[EntityAdminRights](context.Background(), reg, domain.InterfaceEntities, "circle")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if constructions != 1 {
		t.Fatalf("expected a single construction, got %d", constructions)
	}
	if any(first) != any(second) {
		t.Fatal("expected the same materialized instance")
	}
	if source.calls != 1 {
		t.Fatalf("expected a single definition load, got %d", source.calls)
	}
}

func TestResolveConcurrentConstructsOnce(t *testing.T) {
	reg, _, locator := newTestRegistry([]domain.EntityType{
		{Interface: domain.InterfaceEntities, Type: "circle", Class: "test.circle"},
	})
	var constructions atomic.Int32
	locator.Register("test.circle", func() any {
		constructions.Add(1)
		return &dupAndAdmin{}
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Resolve[EntitySearchDuplicate](context.Background(), reg, domain.InterfaceEntities, "circle"); err != nil {
				t.Errorf("resolve failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := constructions.Load(); got != 1 {
		t.Fatalf("expected a single construction, got %d", got)
	}
}

func TestResolveAllSkipsFailures(t *testing.T) {
	reg, _, locator := newTestRegistry([]domain.EntityType{
		{Interface: domain.InterfaceEntities, Type: "circle", Class: "test.circle"},
		{Interface: domain.InterfaceEntities, Type: "squad", Class: "test.squad"},
		{Interface: domain.InterfaceEntities, Type: "broken", Class: "test.broken"},
		{Interface: domain.InterfaceEntitiesAccounts, Type: "other", Class: "test.other"},
	})
	locator.Register("test.circle", func() any { return &dupAndAdmin{} })
	locator.Register("test.squad", func() any { return &dupOnly{} })
	locator.Register("test.other", func() any { return &dupAndAdmin{} })

	admins, err := ResolveAll[EntityAdminRights](context.Background(), reg, domain.InterfaceEntities)
	if err != nil {
		t.Fatalf("resolve all failed: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("expected 1 admin-capable plugin, got %d", len(admins))
	}

	dups, err := ResolveAll[EntitySearchDuplicate](context.Background(), reg, domain.InterfaceEntities)
	if err != nil {
		t.Fatalf("resolve all failed: %v", err)
	}
	if len(dups) != 2 {
		t.Fatalf("expected 2 duplicate-capable plugins, got %d", len(dups))
	}
}

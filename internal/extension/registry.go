package extension

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"

	"github.com/hiraeth-dev/entities/internal/domain"
)

var tracer = otel.Tracer("extension")

// Registry resolves (interface, type tag) pairs to materialized plugin
// instances. Type definitions are loaded once per registry lifetime; external
// registration changes require a restart. Instances are constructed lazily
// through the injected Locator and memoized, so resolving the same pair twice
// returns the same instance.
type Registry struct {
	source  TypesSource
	locator Locator

	// mu guards the one-time definition load and instance construction, so
	// each (interface, type) pair is materialized exactly once.
	mu     sync.Mutex
	loaded bool
	defs   []domain.EntityType

	instances *cache.Cache
}

func NewRegistry(source TypesSource, locator Locator) *Registry {
	return &Registry{
		source:    source,
		locator:   locator,
		instances: cache.New(cache.NoExpiration, 0),
	}
}

func (r *Registry) definitions(ctx context.Context) ([]domain.EntityType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		defs, err := r.source.GetAllRegisteredTypes(ctx)
		if err != nil {
			return nil, err
		}
		r.defs = defs
		r.loaded = true
	}
	return r.defs, nil
}

// instance returns the materialized plugin for (iface, typeTag). Construction
// failure is reported as TypeNotFoundError: to the caller an unregistered
// type and a broken one look the same.
func (r *Registry) instance(ctx context.Context, iface, typeTag string) (any, error) {
	defs, err := r.definitions(ctx)
	if err != nil {
		return nil, err
	}

	for _, def := range defs {
		if def.Interface != iface || def.Type != typeTag {
			continue
		}
		return r.materialize(def)
	}

	return nil, domain.TypeNotFoundError{Interface: iface, Type: typeTag}
}

func (r *Registry) materialize(def domain.EntityType) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := def.Interface + "#" + def.Type
	if v, ok := r.instances.Get(key); ok {
		return v, nil
	}

	v, err := r.locator.Materialize(def.Class)
	if err != nil {
		slog.Debug("plugin materialization failed",
			slog.String("class", def.Class),
			slog.String("error", err.Error()),
			slog.String("module", "extension"),
		)
		return nil, domain.TypeNotFoundError{Interface: def.Interface, Type: def.Type}
	}

	r.instances.Set(key, v, cache.NoExpiration)
	return v, nil
}

func capabilityName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// Resolve materializes the plugin registered for (iface, typeTag) and asserts
// it implements the capability T. It fails with TypeNotFoundError when no
// plugin is registered or construction fails, and with
// ImplementationNotFoundError when the plugin exists but lacks T.
func Resolve[T any](ctx context.Context, r *Registry, iface, typeTag string) (T, error) {
	ctx, span := tracer.Start(ctx, "Extension.Registry.Resolve")
	defer span.End()

	var zero T

	v, err := r.instance(ctx, iface, typeTag)
	if err != nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		err := domain.ImplementationNotFoundError{
			Instance:   fmt.Sprintf("%T", v),
			Capability: capabilityName[T](),
		}
		span.RecordError(err)
		return zero, err
	}

	return t, nil
}

// ResolveAll materializes every plugin registered under iface and returns
// those implementing T, silently skipping instances that fail construction or
// the capability assertion. Partial coverage is acceptable for fan-out use.
func ResolveAll[T any](ctx context.Context, r *Registry, iface string) ([]T, error) {
	ctx, span := tracer.Start(ctx, "Extension.Registry.ResolveAll")
	defer span.End()

	defs, err := r.definitions(ctx)
	if err != nil {
		return nil, err
	}

	var out []T
	for _, def := range defs {
		if def.Interface != iface {
			continue
		}
		v, err := r.materialize(def)
		if err != nil {
			continue
		}
		if t, ok := v.(T); ok {
			out = append(out, t)
		}
	}
	return out, nil
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/hiraeth-dev/entities/internal/config"
	"github.com/hiraeth-dev/entities/internal/domain"
	"github.com/hiraeth-dev/entities/internal/extension"
	"github.com/hiraeth-dev/entities/internal/infra/database"
	"github.com/hiraeth-dev/entities/internal/infra/repository"
	"github.com/hiraeth-dev/entities/internal/present/rest"
	"github.com/hiraeth-dev/entities/internal/usecase"
	"github.com/hiraeth-dev/entities/plugins/group"
	"github.com/hiraeth-dev/entities/plugins/localuser"
)

// builtinTypes are the type definitions shipped with the daemon. Additional
// types are registered by installation tooling directly in the types table.
var builtinTypes = []domain.EntityType{
	{Interface: domain.InterfaceEntities, Type: group.TypeTag, Class: group.Class},
	{Interface: domain.InterfaceEntitiesAccounts, Type: localuser.TypeTag, Class: localuser.Class},
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		panic("failed to connect database")
	}

	if err := database.MigratePostgres(db); err != nil {
		panic("failed to migrate database")
	}

	ctx := context.Background()

	typesRepo := repository.NewTypesRepository(db)
	if err := typesRepo.SeedTypes(ctx, builtinTypes); err != nil {
		panic("failed to seed entity types: " + err.Error())
	}

	locator := extension.NewFactoryLocator()
	locator.Register(group.Class, func() any { return group.New() })
	locator.Register(localuser.Class, func() any { return localuser.New() })

	registry := extension.NewRegistry(typesRepo, locator)

	entitiesRepo := repository.NewEntitiesRepository(db)
	membersRepo := repository.NewMembersRepository(db)

	var accounts usecase.AccountsGateway = repository.NewAccountsRepository(db)
	ttl := time.Duration(conf.Server.CacheTTL) * time.Second
	if conf.Server.RedisAddr != "" {
		rdb := database.NewRedis(conf.Server.RedisAddr, "", conf.Server.RedisDB)
		accounts = repository.NewCachedAccounts(accounts, repository.NewRedisCache(rdb, ttl))
	} else if conf.Server.MemcachedAddr != "" {
		mc := database.NewMemcached(conf.Server.MemcachedAddr)
		accounts = repository.NewCachedAccounts(accounts, repository.NewMemcachedCache(mc, ttl))
	}

	manager := usecase.NewManager(registry, entitiesRepo, accounts, membersRepo)
	handler := rest.NewHandler(manager)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if conf.Server.EnableTrace {
		shutdown, err := setupTracer(ctx, conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", slog.String("error", err.Error()))
		} else {
			defer shutdown(ctx)
			e.Use(otelecho.Middleware("entitiesd"))
		}
	}

	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTracer(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "entitiesd"),
		)),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

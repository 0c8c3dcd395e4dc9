package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hiraeth-dev/entities/internal/domain"
	"github.com/hiraeth-dev/entities/internal/usecase"
)

// Handler fronts the entity manager over HTTP. This is wiring around the
// in-process contracts, not a protocol definition.
type Handler struct {
	manager *usecase.Manager
}

func NewHandler(manager *usecase.Manager) *Handler {
	return &Handler{manager: manager}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/entities", h.handleCreateEntity)
	e.GET("/entities", h.handleListEntities)
	e.GET("/entities/:id", h.handleGetEntity)
	e.GET("/entities/:id/members", h.handleGetMembers)
	e.GET("/search", h.handleSearch)
	e.POST("/accounts", h.handleCreateAccount)
	e.GET("/accounts/search", h.handleSearchAccounts)
	e.GET("/accounts/:id", h.handleGetAccount)
	e.GET("/accounts/:id/memberships", h.handleGetMemberships)
	e.GET("/accounts/:id/admin", h.handleAccountAdminRights)
	e.POST("/members", h.handleCreateMember)
}

type createEntityRequest struct {
	Entity  domain.Entity `json:"entity"`
	OwnerID string        `json:"ownerId"`
}

func (h *Handler) handleCreateEntity(c echo.Context) error {
	ctx := c.Request().Context()

	var request createEntityRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	entity := request.Entity
	if err := h.manager.SaveEntity(ctx, &entity, request.OwnerID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, entity)
}

func (h *Handler) handleListEntities(c echo.Context) error {
	ctx := c.Request().Context()

	entities, err := h.manager.GetEntities(ctx, c.QueryParam("type"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, entities)
}

func (h *Handler) handleGetEntity(c echo.Context) error {
	ctx := c.Request().Context()

	entity, err := h.manager.GetEntity(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, entity)
}

func (h *Handler) handleGetMembers(c echo.Context) error {
	ctx := c.Request().Context()

	entity, err := h.manager.GetEntity(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	members, err := h.manager.EntityGetMembers(ctx, entity)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, members)
}

func (h *Handler) handleSearch(c echo.Context) error {
	ctx := c.Request().Context()

	needle := c.QueryParam("q")
	if needle == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing q"})
	}

	entities, err := h.manager.SearchEntities(ctx, needle, c.QueryParam("type"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, entities)
}

func (h *Handler) handleSearchAccounts(c echo.Context) error {
	ctx := c.Request().Context()

	needle := c.QueryParam("q")
	if needle == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing q"})
	}

	accounts, err := h.manager.SearchAccounts(ctx, needle, c.QueryParam("type"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, accounts)
}

func (h *Handler) handleCreateAccount(c echo.Context) error {
	ctx := c.Request().Context()

	var account domain.Account
	if err := c.Bind(&account); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.manager.SaveAccount(ctx, &account); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, account)
}

func (h *Handler) handleGetAccount(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := h.manager.GetAccount(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, account)
}

func (h *Handler) handleGetMemberships(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := h.manager.GetAccount(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	memberships, err := h.manager.AccountBelongsTo(ctx, account)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, memberships)
}

func (h *Handler) handleAccountAdminRights(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := h.manager.GetAccount(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	admin, err := h.manager.AccountHasAdminRights(ctx, account)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"admin": admin})
}

func (h *Handler) handleCreateMember(c echo.Context) error {
	ctx := c.Request().Context()

	var member domain.Member
	if err := c.Bind(&member); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.manager.SaveMember(ctx, &member); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, member)
}

func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.AlreadyExistsError{}):
		var dup domain.AlreadyExistsError
		errors.As(err, &dup)
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error(), "existing": dup.ExistingID})
	case errors.Is(err, domain.CreationError{}):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}

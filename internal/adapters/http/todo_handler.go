package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/core/internal/application/services"
	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/infrastructure/logger"
	"github.com/todoapp/core/internal/ports"
)

// HeaderDeviceID carries the opaque per-device identifier that stands in
// for authentication.
const HeaderDeviceID = "X-Device-Id"

// TodoHandler handles todo-related requests
type TodoHandler struct {
	todoService *services.TodoService
	logger      *logger.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todoService *services.TodoService, logger *logger.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// ListTodos handles GET /todos
func (h *TodoHandler) ListTodos(c echo.Context) error {
	deviceID, err := deviceIDFromRequest(c)
	if err != nil {
		return err
	}

	todos, err := h.todoService.ListTodos(c.Request().Context(), deviceID, c.QueryParam("category"))
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCategory) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid category")
		}
		h.logger.Error("List todos failed", "error", err, "device_id", deviceID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch todos")
	}

	return c.JSON(http.StatusOK, todos)
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(c echo.Context) error {
	deviceID, err := deviceIDFromRequest(c)
	if err != nil {
		return err
	}

	var req ports.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Title is required")
	}

	todo, err := h.todoService.CreateTodo(c.Request().Context(), deviceID, req)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrEmptyTitle):
			return echo.NewHTTPError(http.StatusBadRequest, "Title is required")
		case errors.Is(err, entities.ErrInvalidCategory):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid category")
		}
		h.logger.Error("Create todo failed", "error", err, "device_id", deviceID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create todo")
	}

	return c.JSON(http.StatusCreated, todo)
}

// UpdateTodo handles PATCH /todos/:id
func (h *TodoHandler) UpdateTodo(c echo.Context) error {
	deviceID, err := deviceIDFromRequest(c)
	if err != nil {
		return err
	}

	id, ok := parseTodoID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Todo not found")
	}

	var req ports.UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	todo, err := h.todoService.UpdateTodo(c.Request().Context(), deviceID, id, req)
	if err != nil {
		if errors.Is(err, entities.ErrTodoNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Todo not found")
		}
		h.logger.Error("Update todo failed", "error", err, "device_id", deviceID, "todo_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update todo")
	}

	return c.JSON(http.StatusOK, todo)
}

// DeleteTodo handles DELETE /todos/:id
func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	deviceID, err := deviceIDFromRequest(c)
	if err != nil {
		return err
	}

	id, ok := parseTodoID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Todo not found")
	}

	if err := h.todoService.DeleteTodo(c.Request().Context(), deviceID, id); err != nil {
		if errors.Is(err, entities.ErrTodoNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Todo not found")
		}
		h.logger.Error("Delete todo failed", "error", err, "device_id", deviceID, "todo_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete todo")
	}

	return c.NoContent(http.StatusNoContent)
}

func deviceIDFromRequest(c echo.Context) (string, error) {
	deviceID := c.Request().Header.Get(HeaderDeviceID)
	if deviceID == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Device ID required")
	}
	return deviceID, nil
}

func parseTodoID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

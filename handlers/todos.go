package handlers

import (
	"strconv"

	"github.com/biosecret/go-todos/apperr"
	"github.com/biosecret/go-todos/events"
	"github.com/biosecret/go-todos/models"
	"github.com/biosecret/go-todos/views"
	"github.com/gofiber/fiber/v2"
)

// GetAllTodos lấy tất cả Todos
//
//	@Summary	List todos
//	@Tags		todos
//	@Produce	json
//	@Success	200	{array}	views.TodoView
//	@Router		/ [get]
func (h *Handlers) GetAllTodos(c *fiber.Ctx) error {
	todos, err := h.repo.ListTodos(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(views.Todos(origin(c), todos))
}

// GetTodo lấy một Todo theo ID
//
//	@Summary	Get a todo
//	@Tags		todos
//	@Produce	json
//	@Param		id	path		string	true	"Todo ID"
//	@Success	200	{object}	views.TodoView
//	@Failure	404	{object}	map[string]string
//	@Router		/{id} [get]
func (h *Handlers) GetTodo(c *fiber.Ctx) error {
	todo, err := h.repo.GetTodo(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(views.Todo(origin(c), todo))
}

// PostTodo tạo mới một Todo cho user_id
//
//	@Summary	Create a todo
//	@Tags		todos
//	@Accept		json
//	@Produce	json
//	@Param		user_id	path		int							true	"Owner ID"
//	@Param		body	body		models.CreateTodoRequest	true	"Todo"
//	@Success	200		{object}	views.TodoView
//	@Failure	400		{object}	map[string]string
//	@Failure	500		{object}	map[string]string
//	@Router		/{user_id} [post]
func (h *Handlers) PostTodo(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("user_id"), 10, 64)
	if err != nil {
		return apperr.Validation("Invalid user id.")
	}

	var req models.CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body.")
	}

	todo, err := h.repo.CreateTodo(c.UserContext(), userID, req.Title, req.Order)
	if err != nil {
		return err
	}
	h.publish(events.New(events.TodoCreated, todo))

	return c.Status(fiber.StatusOK).JSON(views.Todo(origin(c), todo))
}

// PatchTodo cập nhật các trường được gửi lên của một Todo
//
//	@Summary	Update a todo
//	@Tags		todos
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Todo ID"
//	@Param		body	body		models.TodoPatch	true	"Fields to change"
//	@Success	200		{object}	views.TodoView
//	@Failure	400		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/{id} [patch]
func (h *Handlers) PatchTodo(c *fiber.Ctx) error {
	var patch models.TodoPatch
	if err := c.BodyParser(&patch); err != nil {
		return apperr.Validation("Invalid request body.")
	}

	todo, err := h.repo.UpdateTodo(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	if !patch.Empty() {
		h.publish(events.New(events.TodoUpdated, todo))
	}

	return c.Status(fiber.StatusOK).JSON(views.Todo(origin(c), todo))
}

// DeleteAllTodos xoá tất cả Todos
//
//	@Summary	Delete all todos
//	@Tags		todos
//	@Produce	json
//	@Success	200	{array}	views.TodoView
//	@Router		/ [delete]
func (h *Handlers) DeleteAllTodos(c *fiber.Ctx) error {
	deleted, err := h.repo.ClearTodos(c.UserContext())
	if err != nil {
		return err
	}
	if len(deleted) > 0 {
		h.publish(events.New(events.TodosCleared, deleted...))
	}
	return c.Status(fiber.StatusOK).JSON(views.Todos(origin(c), deleted))
}

// DeleteTodo xoá một Todo
//
//	@Summary	Delete a todo
//	@Tags		todos
//	@Produce	json
//	@Param		id	path		string	true	"Todo ID"
//	@Success	200	{object}	views.TodoView
//	@Failure	404	{object}	map[string]string
//	@Router		/{id} [delete]
func (h *Handlers) DeleteTodo(c *fiber.Ctx) error {
	todo, err := h.repo.DeleteTodo(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	h.publish(events.New(events.TodoDeleted, todo))
	return c.Status(fiber.StatusOK).JSON(views.Todo(origin(c), todo))
}

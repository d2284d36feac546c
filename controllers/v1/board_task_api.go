package apiv1

import (
	"hr-dashboard-backend/controllers"
	boardtask "hr-dashboard-backend/lib/board-task"
	authutils "hr-dashboard-backend/lib/utils/auth-utils"
	apimodels "hr-dashboard-backend/models/api"
	boardtaskapimodels "hr-dashboard-backend/models/api/board-task"
	dbmodels "hr-dashboard-backend/models/db"

	"github.com/gofiber/fiber/v2"
)

const sessionHeader = "X-Session-Id"

type boardTaskApiController struct {
	controllers.BaseAPIController
}

func InitBoardTaskApiRouters(app fiber.Router) {
	controller := boardTaskApiController{}
	app.Route("board-task", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Put("", controller.replace)
		router.Post("", controller.add)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Put("toggle", controller.toggle)
			idRoute.Delete("", controller.delete)
		})
	})
}

// sessionID сессия из заголовка, при включенной авторизации по умолчанию пользователь из токена
func (c *boardTaskApiController) sessionID(ctx *fiber.Ctx) string {
	if session := ctx.Get(sessionHeader); session != "" {
		return session
	}
	return authutils.GetUserID(ctx)
}

// @Summary Список
// @Tags Доска задач
// @Description Задачи доски текущей сессии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   X-Session-Id		header		string	false	"идентификатор сессии"
// @Success 200 {object} apimodels.Response{data=[]dbmodels.BoardTask}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/board-task [get]
func (c *boardTaskApiController) list(ctx *fiber.Ctx) error {
	list, err := boardtask.Instance.List(c.sessionID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения задач")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Сохранить доску
// @Tags Доска задач
// @Description Полная замена задач доски текущей сессии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   X-Session-Id		header		string	false	"идентификатор сессии"
// @Param	body body	 []dbmodels.BoardTask	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]dbmodels.BoardTask}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/board-task [put]
func (c *boardTaskApiController) replace(ctx *fiber.Ctx) error {
	var payload []dbmodels.BoardTask
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := boardtask.Instance.Replace(c.sessionID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения задач")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Добавить задачу
// @Tags Доска задач
// @Description Добавление задачи на доску текущей сессии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   X-Session-Id		header		string	false	"идентификатор сессии"
// @Param	body body	 boardtaskapimodels.BoardTaskData	true	"request body"
// @Success 200 {object} apimodels.Response{data=dbmodels.BoardTask}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/board-task [post]
func (c *boardTaskApiController) add(ctx *fiber.Ctx) error {
	var payload boardtaskapimodels.BoardTaskData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	task, err := boardtask.Instance.Add(c.sessionID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(task))
}

// @Summary Переключить выполнение
// @Tags Доска задач
// @Description Отметить задачу выполненной или вернуть в работу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   X-Session-Id		header		string	false	"идентификатор сессии"
// @Param   id          		path    string  				    	true         "task ID"
// @Success 200 {object} apimodels.Response{data=dbmodels.BoardTask}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/board-task/{id}/toggle [put]
func (c *boardTaskApiController) toggle(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	task, err := boardtask.Instance.Toggle(c.sessionID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(task))
}

// @Summary Удалить задачу
// @Tags Доска задач
// @Description Удаление задачи с доски
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   X-Session-Id		header		string	false	"идентификатор сессии"
// @Param   id          		path    string  				    	true         "task ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/board-task/{id} [delete]
func (c *boardTaskApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = boardtask.Instance.Delete(c.sessionID(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

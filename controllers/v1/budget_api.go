package apiv1

import (
	"hr-dashboard-backend/controllers"
	"hr-dashboard-backend/lib/budget"
	apimodels "hr-dashboard-backend/models/api"
	budgetapimodels "hr-dashboard-backend/models/api/budget"

	"github.com/gofiber/fiber/v2"
)

type budgetApiController struct {
	controllers.BaseAPIController
}

func InitBudgetApiRouters(app fiber.Router) {
	controller := budgetApiController{}
	app.Route("budget", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get("summary", controller.summary)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Post("expense", controller.addExpense)
		})
	})
}

// @Summary Список
// @Tags Бюджет
// @Description Список бюджетов с расходами
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]budgetapimodels.BudgetView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/budget [get]
func (c *budgetApiController) list(ctx *fiber.Ctx) error {
	list, err := budget.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка бюджетов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание
// @Tags Бюджет
// @Description Создание бюджета
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 budgetapimodels.BudgetData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/budget [post]
func (c *budgetApiController) create(ctx *fiber.Ctx) error {
	var payload budgetapimodels.BudgetData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := budget.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания бюджета")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Сводка
// @Tags Бюджет
// @Description Освоение бюджетов и расходы по категориям
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=budgetapimodels.Summary}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/budget/summary [get]
func (c *budgetApiController) summary(ctx *fiber.Ctx) error {
	resp, err := budget.Instance.Summary()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сводки по бюджетам")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение по ИД
// @Tags Бюджет
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "budget ID"
// @Success 200 {object} apimodels.Response{data=budgetapimodels.BudgetView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/budget/{id} [get]
func (c *budgetApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := budget.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения бюджета")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Добавить расход
// @Tags Бюджет
// @Description Добавление расхода в бюджет
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 budgetapimodels.ExpenseData	true	"request body"
// @Param   id          		path    string  				    	true         "budget ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/budget/{id}/expense [post]
func (c *budgetApiController) addExpense(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload budgetapimodels.ExpenseData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	expenseID, err := budget.Instance.AddExpense(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления расхода")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(expenseID))
}

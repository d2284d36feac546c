package apiv1

import (
	"hr-dashboard-backend/controllers"
	messagetemplate "hr-dashboard-backend/lib/message-template"
	apimodels "hr-dashboard-backend/models/api"
	msgtemplateapimodels "hr-dashboard-backend/models/api/message-template"

	"github.com/gofiber/fiber/v2"
)

type msgTemplateApiController struct {
	controllers.BaseAPIController
}

func InitMsgTemplateApiRouters(app fiber.Router) {
	controller := msgTemplateApiController{}
	app.Route("template", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Post("render", controller.render)
			idRoute.Post("send", controller.send)
		})
	})
}

// @Summary Список
// @Tags Шаблоны сообщений
// @Description Список шаблонов писем
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]msgtemplateapimodels.MsgTemplateView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/template [get]
func (c *msgTemplateApiController) list(ctx *fiber.Ctx) error {
	list, err := messagetemplate.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка шаблонов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание
// @Tags Шаблоны сообщений
// @Description Создание шаблона письма
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 msgtemplateapimodels.MsgTemplateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/template [post]
func (c *msgTemplateApiController) create(ctx *fiber.Ctx) error {
	var payload msgtemplateapimodels.MsgTemplateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := messagetemplate.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания шаблона")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение по ИД
// @Tags Шаблоны сообщений
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "template ID"
// @Success 200 {object} apimodels.Response{data=msgtemplateapimodels.MsgTemplateView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/template/{id} [get]
func (c *msgTemplateApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := messagetemplate.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения шаблона")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Шаблоны сообщений
// @Description Обновление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 msgtemplateapimodels.MsgTemplateData	true	"request body"
// @Param   id          		path    string  				    	true         "template ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/template/{id} [put]
func (c *msgTemplateApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload msgtemplateapimodels.MsgTemplateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = messagetemplate.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения шаблона")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление
// @Tags Шаблоны сообщений
// @Description Удаление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "template ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/template/{id} [delete]
func (c *msgTemplateApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = messagetemplate.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления шаблона")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Предпросмотр
// @Tags Шаблоны сообщений
// @Description Подстановка данных кандидата в шаблон
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 msgtemplateapimodels.RenderRequest	true	"request body"
// @Param   id          		path    string  				    	true         "template ID"
// @Success 200 {object} apimodels.Response{data=msgtemplateapimodels.RenderedMessage}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/template/{id}/render [post]
func (c *msgTemplateApiController) render(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload msgtemplateapimodels.RenderRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := messagetemplate.Instance.Render(id, payload.CandidateID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подготовки письма")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отправка
// @Tags Шаблоны сообщений
// @Description Отправка письма по шаблону кандидатам
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 msgtemplateapimodels.SendRequest	true	"request body"
// @Param   id          		path    string  				    	true         "template ID"
// @Success 200 {object} apimodels.Response{data=msgtemplateapimodels.SendResult}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/template/{id}/send [post]
func (c *msgTemplateApiController) send(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload msgtemplateapimodels.SendRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := messagetemplate.Instance.Send(id, payload.CandidateIDs)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки писем")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

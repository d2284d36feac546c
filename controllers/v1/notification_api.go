package apiv1

import (
	"hr-dashboard-backend/controllers"
	"hr-dashboard-backend/lib/notification"
	apimodels "hr-dashboard-backend/models/api"
	notificationapimodels "hr-dashboard-backend/models/api/notification"

	"github.com/gofiber/fiber/v2"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app fiber.Router) {
	controller := notificationApiController{}
	app.Route("notification", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get("unread-count", controller.unreadCount)
		router.Put("read-all", controller.readAll)
		router.Put(":id/read", controller.read)
	})
}

// @Summary Список
// @Tags Уведомления
// @Description Список уведомлений, новые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   unread          	query    bool  				    	false         "только непрочитанные"
// @Success 200 {object} apimodels.Response{data=[]notificationapimodels.NotificationView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/notification [get]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	list, err := notification.Instance.List(ctx.QueryBool("unread", false))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Количество непрочитанных
// @Tags Уведомления
// @Description Количество непрочитанных уведомлений
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=notificationapimodels.UnreadCountView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/notification/unread-count [get]
func (c *notificationApiController) unreadCount(ctx *fiber.Ctx) error {
	count, err := notification.Instance.UnreadCount()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения количества уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(notificationapimodels.UnreadCountView{Count: count}))
}

// @Summary Прочитано
// @Tags Уведомления
// @Description Отметить уведомление прочитанным
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "notification ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/notification/{id}/read [put]
func (c *notificationApiController) read(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = notification.Instance.MarkRead(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения уведомления")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Прочитать все
// @Tags Уведомления
// @Description Отметить все уведомления прочитанными
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/notification/read-all [put]
func (c *notificationApiController) readAll(ctx *fiber.Ctx) error {
	if err := notification.Instance.MarkAllRead(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

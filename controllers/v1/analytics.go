package apiv1

import (
	"hr-dashboard-backend/controllers"
	"hr-dashboard-backend/lib/analytics"
	apimodels "hr-dashboard-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type analyticsApiController struct {
	controllers.BaseAPIController
}

func InitAnalyticsApiRouters(app fiber.Router) {
	controller := analyticsApiController{}
	app.Route("analytics", func(router fiber.Router) {
		router.Get("summary", controller.summary)
	})
}

// @Summary Сводка
// @Tags Аналитика
// @Description Показатели дашборда
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=analyticsapimodels.Summary}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/analytics/summary [get]
func (c *analyticsApiController) summary(ctx *fiber.Ctx) error {
	data, err := analytics.Instance.Summary()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения аналитики")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}

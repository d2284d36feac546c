package apiv1

import (
	"hr-dashboard-backend/config"
	apimodels "hr-dashboard-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type HealthView struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Auth    bool   `json:"auth"`
}

func InitHealthApiRouters(app fiber.Router) {
	app.Get("health", health)
}

// @Summary Проверка доступности
// @Tags Служебное
// @Description Проверка доступности сервиса
// @Success 200 {object} apimodels.Response{data=apiv1.HealthView}
// @router /api/v1/health [get]
func health(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(HealthView{
		Status:  "ok",
		Storage: config.Conf.Storage.Driver,
		Auth:    config.Conf.IsAuthEnabled(),
	}))
}

package apiv1

import (
	"hr-dashboard-backend/lib/ws"
	"hr-dashboard-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

// InitAllRouters маршруты /api/v1: публичные и рабочее пространство рекрутера
func InitAllRouters(apiV1 fiber.Router) {
	InitHealthApiRouters(apiV1)
	InitAuthApiRouters(apiV1)
	ws.InitWs(apiV1)

	space := apiV1.Group("/space", middleware.AuthorizationRequired())
	InitCandidateApiRouters(space)
	InitPipelineApiRouters(space)
	InitJobApiRouters(space)
	InitCvApiRouters(space)
	InitMsgTemplateApiRouters(space)
	InitBudgetApiRouters(space)
	InitNotificationApiRouters(space)
	InitBoardTaskApiRouters(space)
	InitAnalyticsApiRouters(space)
}

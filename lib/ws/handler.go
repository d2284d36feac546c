package ws

import (
	"hr-dashboard-backend/lib/memdb"
	wsclient "hr-dashboard-backend/lib/ws/client"
	connectionhub "hr-dashboard-backend/lib/ws/hub/connection-hub"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(app fiber.Router) {
	app.Use("/ws", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		return ctx.Next()
	})
	app.Get("/ws", websocket.New(pushHandler))
}

// @Summary Системные пуши
// @Tags Websocket
// @Description Уведомления и прогресс задач анализа резюме
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 426
// @router /api/v1/ws [get]
func pushHandler(c *websocket.Conn) {
	clientID := memdb.NewID()
	client := wsclient.NewClient(clientID, c, connectionhub.Instance)
	connectionhub.Instance.AddClient(clientID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(clientID)
	}()
	client.Dispatch()
}

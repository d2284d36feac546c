package wsclient

import (
	"encoding/json"

	wsmodels "hr-dashboard-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Replier отправка ответа конкретному клиенту
type Replier interface {
	SendTo(clientID, code, msg string, data interface{}) bool
}

func NewClient(clientID string, c *websocket.Conn, replier Replier) *WsClient {
	return &WsClient{
		conn:     c,
		clientID: clientID,
		replier:  replier,
	}
}

type WsClient struct {
	conn     *websocket.Conn
	clientID string
	replier  Replier
}

var closeCodes []int

func init() {
	for code := websocket.CloseNormalClosure; code <= websocket.CloseTLSHandshake; code++ {
		closeCodes = append(closeCodes, code)
	}
}

// Dispatch читает сообщения клиента до закрытия соединения
func (c *WsClient) Dispatch() {
	if c.conn == nil {
		return
	}
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				log.WithError(err).WithField("client_id", c.clientID).Error("ошибка получения сообщения")
			}
			return
		}
		c.handle(data)
	}
}

func (c *WsClient) handle(data []byte) {
	logger := log.WithField("client_id", c.clientID)
	var msg wsmodels.ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		logger.WithField("ws_message", string(data)).Debug("сообщение клиента не разобрано")
		return
	}
	switch msg.Code {
	case wsmodels.CodePing:
		c.replier.SendTo(c.clientID, wsmodels.CodePong, "pong", nil)
	default:
		logger.WithField("code", msg.Code).Debug("неизвестный код сообщения клиента")
	}
}

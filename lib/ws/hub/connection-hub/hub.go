package connectionhub

import (
	"sync"
	"time"

	wsmodels "hr-dashboard-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
)

type Provider interface {
	AddClient(clientID string, conn *websocket.Conn)
	DeleteClient(clientID string)
	Broadcast(code, msg string, data interface{})
	SendTo(clientID, code, msg string, data interface{}) bool
	ClientsCount() int
}

var Instance Provider

func Init() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	return &impl{
		clients: map[string]clientSession{},
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[string]clientSession //map[clientID]
}

func (i *impl) DeleteClient(clientID string) {
	i.mu.Lock()
	sess, ok := i.clients[clientID]
	if ok {
		delete(i.clients, clientID)
	}
	i.mu.Unlock()
	if !ok {
		return
	}
	sess.stop()
}

func (i *impl) AddClient(clientID string, conn *websocket.Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	oldSess, ok := i.clients[clientID]
	if ok {
		oldSess.stop()
	}
	i.clients[clientID] = newSession(conn)
}

func newMessage(code, msg string, data interface{}) wsmodels.ServerMessage {
	return wsmodels.ServerMessage{
		Time: time.Now().Format("02.01.2006 15:04:05"),
		Code: code,
		Msg:  msg,
		Data: data,
	}
}

func (i *impl) Broadcast(code, msg string, data interface{}) {
	message := newMessage(code, msg, data)
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, sess := range i.clients {
		sess.push(message)
	}
}

// SendTo false, если клиент уже отключился
func (i *impl) SendTo(clientID, code, msg string, data interface{}) bool {
	i.mu.RLock()
	sess, ok := i.clients[clientID]
	i.mu.RUnlock()
	if !ok {
		return false
	}
	sess.push(newMessage(code, msg, data))
	return true
}

func (i *impl) ClientsCount() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.clients)
}

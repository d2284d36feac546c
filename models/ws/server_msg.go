package wsmodels

type ServerMessage struct {
	Time string      `json:"time"`           // время события
	Code string      `json:"code"`           // код события
	Msg  string      `json:"msg"`            // текст события
	Data interface{} `json:"data,omitempty"` // данные события (прогресс задачи, уведомление)
}

// ClientMessage сообщение от клиента
type ClientMessage struct {
	Code string `json:"code"`
}

const (
	CodeNotification = "notification"
	CodeTaskProgress = "task_progress"
	CodePing         = "ping"
	CodePong         = "pong"
)

package apimodels

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Response конверт ответа api
type Response struct {
	Status  string      `json:"status"`            // success | fail
	Message string      `json:"message,omitempty"` // текст ошибки
	Data    interface{} `json:"data,omitempty"`
}

// ScrollerResponse ответ со списком и общим количеством записей по фильтру
type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count"`
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: NewResponse(data),
		RowCount: rowCount,
	}
}

// Pagination страницы нумеруются с 1
type Pagination struct {
	Limit int `json:"limit" query:"limit"` // записей на странице, не больше 100
	Page  int `json:"page" query:"page"`
}

func (r Pagination) GetPage() (page, limit int) {
	page, limit = r.Page, r.Limit
	if page < 1 {
		page = 1
	}
	switch {
	case limit <= 0:
		limit = defaultPageLimit
	case limit > maxPageLimit:
		limit = maxPageLimit
	}
	return page, limit
}

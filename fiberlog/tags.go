package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid      = "pid"
	TagLatency  = "latency"
	TagStatus   = "status"
	TagMethod   = "method"
	TagPath     = "path"
	TagURL      = "url"
	TagIP       = "ip"
	TagUA       = "ua"
	TagBody     = "body"
	TagResBody  = "resBody"
	TagQuery    = "query"
	TagHostName = "hostname"
	RequestID   = "requestId"
)

// тело запроса/ответа длиннее обрезается в логе
const maxBodyLogSize = 4096

// FuncTag возвращает значение поля лога для запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} { return d.pid },
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} { return c.Response().StatusCode() },
		TagMethod: func(c *fiber.Ctx, d *data) interface{} { return c.Method() },
		TagPath:   func(c *fiber.Ctx, d *data) interface{} { return c.Path() },
		TagURL:    func(c *fiber.Ctx, d *data) interface{} { return c.OriginalURL() },
		TagIP:     func(c *fiber.Ctx, d *data) interface{} { return c.IP() },
		TagUA:     func(c *fiber.Ctx, d *data) interface{} { return c.Get(fiber.HeaderUserAgent) },
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			if isMultipart(c) {
				return ""
			}
			return cut(c.Body())
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			return cut(c.Response().Body())
		},
		TagQuery: func(c *fiber.Ctx, d *data) interface{} { return string(c.Request().URI().QueryString()) },
		TagHostName: func(c *fiber.Ctx, d *data) interface{} {
			name, _ := os.Hostname()
			return name
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			return c.GetRespHeader(fiber.HeaderXRequestID)
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

func isMultipart(c *fiber.Ctx) bool {
	return len(c.Request().Header.MultipartFormBoundary()) > 0
}

func cut(body []byte) string {
	if len(body) > maxBodyLogSize {
		return string(body[:maxBodyLogSize]) + "..."
	}
	return string(body)
}

package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := log.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&log.JSONFormatter{})

	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:      []string{TagMethod, TagPath, TagStatus, TagBody, TagLatency},
		SkipPaths: []string{"/skip"},
	}))
	app.Post("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/missing", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })
	app.Get("/skip", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/api/v1/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	t.Run(`info for success`, func(t *testing.T) {
		buf.Reset()
		_, err := app.Test(httptest.NewRequest(http.MethodPost, "/ok", strings.NewReader(`{"a":1}`)))
		require.Nil(t, err)
		entry := map[string]interface{}{}
		require.Nil(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "info", entry["level"])
		require.Equal(t, "POST", entry[TagMethod])
		require.Equal(t, "/ok", entry[TagPath])
		require.Equal(t, `{"a":1}`, entry[TagBody])
		require.EqualValues(t, 200, entry[TagStatus])
		require.NotEmpty(t, entry[TagLatency])
	})

	t.Run(`warn for error status`, func(t *testing.T) {
		buf.Reset()
		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
		require.Nil(t, err)
		entry := map[string]interface{}{}
		require.Nil(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "warning", entry["level"])
		_, hasBody := entry[TagBody]
		require.False(t, hasBody)
	})

	t.Run(`skipped path`, func(t *testing.T) {
		buf.Reset()
		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/skip", nil))
		require.Nil(t, err)
		require.Zero(t, buf.Len())
	})

	t.Run(`health message`, func(t *testing.T) {
		buf.Reset()
		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		require.Nil(t, err)
		entry := map[string]interface{}{}
		require.Nil(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "проверка доступности", entry["msg"])
	})
}

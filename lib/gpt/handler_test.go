package gpthandler

import (
	"context"
	yagptclient "hr-dashboard-backend/lib/gpt/yagpt-client"
	"testing"

	"github.com/stretchr/testify/require"
)

type clientMock struct {
	promt, text string
}

func (c *clientMock) Complete(_ context.Context, req yagptclient.Request) (string, error) {
	c.promt = req.Instruction
	c.text = req.Text
	return "Go developer wanted", nil
}

func TestGenerateJobDescription(t *testing.T) {
	t.Run(`not configured`, func(t *testing.T) {
		_, err := NewInstance(nil, "Acme").GenerateJobDescription(context.Background(), "go")
		require.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run(`generated`, func(t *testing.T) {
		client := &clientMock{}
		resp, err := NewInstance(client, "Acme").GenerateJobDescription(context.Background(), "go, postgres")
		require.Nil(t, err)
		require.Equal(t, "Go developer wanted", resp.Description)
		require.Contains(t, client.promt, "Acme")
		require.Contains(t, client.text, "go, postgres")
	})
}

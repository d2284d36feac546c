package filestorage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	t.Run(`upload and get`, func(t *testing.T) {
		storage := NewMemoryInstance()
		body := []byte("John Smith john@mail.test")
		id, err := storage.UploadCV(context.Background(), "John_Smith.TXT", body)
		require.Nil(t, err)
		require.True(t, strings.HasPrefix(id, "cv/"))
		require.True(t, strings.HasSuffix(id, ".txt"))
		body[0] = 'X'
		stored, err := storage.GetCV(context.Background(), id)
		require.Nil(t, err)
		require.Equal(t, "John Smith john@mail.test", string(stored))

		_, err = storage.GetCV(context.Background(), "cv/missing")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run(`content type`, func(t *testing.T) {
		require.Equal(t, "application/pdf", contentType("cv.PDF"))
		require.Equal(t, "application/octet-stream", contentType("cv"))
	})
}

package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadWithRetryRereadsPayload(t *testing.T) {
	attempts := 0
	err := uploadWithRetry(context.Background(), strings.NewReader("%PDF-payload"), func(ctx context.Context, r io.Reader, n int64) error {
		attempts++
		data, readErr := io.ReadAll(r)
		require.NoError(t, readErr)
		// every attempt must see the full payload, not a drained reader
		require.Equal(t, "%PDF-payload", string(data))
		require.Equal(t, int64(len(data)), n)
		if attempts < 3 {
			return errors.New("transient put failure")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestUploadWithRetryGivesUp(t *testing.T) {
	attempts := 0
	err := uploadWithRetry(context.Background(), strings.NewReader("x"), func(ctx context.Context, r io.Reader, n int64) error {
		attempts++
		return errors.New("put keeps failing")
	})
	require.Error(t, err)
	assert.Equal(t, 4, attempts, "one initial attempt plus three retries")
}

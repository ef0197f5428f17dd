package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"harpy-detect/internal/domain/entity"
	"harpy-detect/internal/infrastructure/storage"
	"harpy-detect/internal/infrastructure/vision"
)

func TestNew_WiresServices(t *testing.T) {
	c := New(storage.NewMemoryChatRepository(), vision.NewCodec(), vision.NewImagingFilter())
	require.NotNil(t, c.ChatService)
	require.NotNil(t, c.PrivacyService)

	settings, err := c.ChatService.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, entity.FilterBlur, settings.Mode)
}

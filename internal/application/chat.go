package app

import (
	"context"

	"harpy-detect/internal/domain/entity"
	"harpy-detect/internal/domain/port"
)

type ChatService struct {
	repo port.ChatSettingsRepository
}

func NewChatService(repo port.ChatSettingsRepository) *ChatService {
	return &ChatService{repo: repo}
}

func (s *ChatService) Get(ctx context.Context, chatID int64) (*entity.ChatSettings, error) {
	return s.repo.Get(ctx, chatID)
}

// SetMode меняет режим атомарно в хранилище и возвращает новые настройки.
func (s *ChatService) SetMode(ctx context.Context, chatID int64, mode entity.FilterMode) (*entity.ChatSettings, error) {
	if err := s.repo.SetMode(ctx, chatID, mode); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, chatID)
}

package storage

import (
	"context"
	"sync"

	"harpy-detect/internal/domain/entity"
	"harpy-detect/internal/domain/port"
)

// MemoryChatRepository in-memory хранилище настроек чатов
type MemoryChatRepository struct {
	mu    sync.RWMutex
	chats map[int64]*entity.ChatSettings
}

// NewMemoryChatRepository создаёт новое in-memory хранилище
func NewMemoryChatRepository() *MemoryChatRepository {
	return &MemoryChatRepository{
		chats: make(map[int64]*entity.ChatSettings),
	}
}

// Get возвращает копию настроек чата, создаёт новые если не найдены
func (r *MemoryChatRepository) Get(ctx context.Context, chatID int64) (*entity.ChatSettings, error) {
	r.mu.RLock()
	settings, exists := r.chats[chatID]
	r.mu.RUnlock()

	if exists {
		copied := *settings
		return &copied, nil
	}

	// Создаём настройки по умолчанию
	newSettings := entity.NewChatSettings(chatID)

	r.mu.Lock()
	if settings, exists := r.chats[chatID]; exists {
		r.mu.Unlock()
		copied := *settings
		return &copied, nil
	}
	stored := *newSettings
	r.chats[chatID] = &stored
	r.mu.Unlock()

	return newSettings, nil
}

// Save сохраняет настройки чата
func (r *MemoryChatRepository) Save(ctx context.Context, settings *entity.ChatSettings) error {
	stored := *settings

	r.mu.Lock()
	r.chats[settings.ChatID] = &stored
	r.mu.Unlock()

	return nil
}

// SetMode обновляет режим фильтра чата
func (r *MemoryChatRepository) SetMode(ctx context.Context, chatID int64, mode entity.FilterMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings, exists := r.chats[chatID]
	if !exists {
		settings = entity.NewChatSettings(chatID)
		r.chats[chatID] = settings
	}
	settings.SetMode(mode)

	return nil
}

// Проверка реализации интерфейса
var _ port.ChatSettingsRepository = (*MemoryChatRepository)(nil)

package port

import (
	"context"

	"harpy-detect/internal/domain/entity"
)

// ChatSettingsRepository интерфейс хранилища настроек чатов
type ChatSettingsRepository interface {
	// Get возвращает настройки чата, создаёт новые если не найдены
	Get(ctx context.Context, chatID int64) (*entity.ChatSettings, error)

	// Save сохраняет настройки чата
	Save(ctx context.Context, settings *entity.ChatSettings) error

	// SetMode обновляет режим фильтра чата
	SetMode(ctx context.Context, chatID int64, mode entity.FilterMode) error
}

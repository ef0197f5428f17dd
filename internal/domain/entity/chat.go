package entity

// ChatSettings настройки чата в Telegram
type ChatSettings struct {
	ChatID int64      // Telegram Chat ID
	Mode   FilterMode // Режим фильтра для следующих фото
}

// NewChatSettings создаёт настройки с режимом по умолчанию
func NewChatSettings(chatID int64) *ChatSettings {
	return &ChatSettings{
		ChatID: chatID,
		Mode:   DefaultFilterMode,
	}
}

// SetMode обновляет режим фильтра
func (c *ChatSettings) SetMode(mode FilterMode) {
	c.Mode = mode
}

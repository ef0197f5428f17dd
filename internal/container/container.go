package container

import (
	app "harpy-detect/internal/application"
	"harpy-detect/internal/domain/port"
)

type Container struct {
	ChatService    *app.ChatService
	PrivacyService *app.PrivacyService
}

func New(chatRepo port.ChatSettingsRepository, codec port.ImageCodec, filter port.RegionFilter) *Container {
	chatService := app.NewChatService(chatRepo)
	privacyService := app.NewPrivacyService(codec, filter)

	return &Container{
		ChatService:    chatService,
		PrivacyService: privacyService,
	}
}

package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	app "harpy-detect/internal/application"
	"harpy-detect/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я скрываю области на фотографиях.

📸 Отправьте фото с подписью — списком областей в пикселях:
x,y,ширина,высота; x,y,ширина,высота

📋 Команды:
/blur — размывать области
/redact — закрашивать области чёрным
/mode — текущий режим
/help — справка`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото (или картинку файлом)
2️⃣ В подписи перечислите области: 10,20,100,50; 300,40,80,80
3️⃣ Получите копию фото со скрытыми областями

Координаты считаются от левого верхнего угла исходного изображения.
Области за пределами изображения пропускаются.`

	msgModeBlur        = "🌫 Режим: размытие."
	msgModeRedact      = "⬛ Режим: закрашивание."
	msgSendPhoto       = "📸 Отправьте фото с подписью x,y,ширина,высота."
	msgNoBoxes         = "✏️ Добавьте к фото подпись с областями: x,y,ширина,высота."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgInvalidImage    = "⚠️ Не удалось прочитать изображение. Попробуйте другой файл."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте ещё раз."
)

// Bot представляет Telegram-бота
type Bot struct {
	api     *tgbotapi.BotAPI
	chats   *app.ChatService
	privacy *app.PrivacyService
	client  *http.Client
}

// NewBot создаёт нового бота
func NewBot(token string, chats *app.ChatService, privacy *app.PrivacyService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram api: %w", err)
	}

	log.Info().Str("account", api.Self.UserName).Msg("Telegram bot authorized")

	return &Bot{
		api:     api,
		chats:   chats,
		privacy: privacy,
		client:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка фото и картинок, отправленных файлом
	if fileID, ok := imageFileID(msg); ok {
		b.handleImage(ctx, msg, fileID)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "blur", "redact":
		mode, _ := entity.ParseFilterMode(msg.Command())
		if _, err := b.chats.SetMode(ctx, msg.Chat.ID, mode); err != nil {
			log.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("Failed to save chat mode")
			b.sendMessage(msg.Chat.ID, msgProcessingError)
			return
		}
		b.sendMessage(msg.Chat.ID, modeMessage(mode))

	case "mode":
		settings, err := b.chats.Get(ctx, msg.Chat.ID)
		if err != nil {
			log.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("Failed to load chat settings")
			b.sendMessage(msg.Chat.ID, msgProcessingError)
			return
		}
		b.sendMessage(msg.Chat.ID, modeMessage(settings.Mode))

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handleImage скрывает области из подписи и отправляет результат
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, fileID string) {
	boxes, err := app.ParseBoxes(msg.Caption)
	if err != nil {
		if errors.Is(err, app.ErrNoBoxes) {
			b.sendMessage(msg.Chat.ID, msgNoBoxes)
		} else {
			b.sendMessage(msg.Chat.ID, "⚠️ "+err.Error())
		}
		return
	}

	settings, err := b.chats.Get(ctx, msg.Chat.ID)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("Failed to load chat settings")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	b.sendMessage(msg.Chat.ID, msgProcessing)

	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("Error downloading image")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	filtered, err := b.privacy.FilterImage(ctx, imageData, boxes, settings.Mode)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidImagePayload) {
			b.sendMessage(msg.Chat.ID, msgInvalidImage)
			return
		}
		log.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("Error filtering image")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "filtered.jpg", Bytes: filtered})
	photo.Caption = fmt.Sprintf("%s, областей: %d", settings.Mode, len(boxes))
	if _, err := b.api.Send(photo); err != nil {
		log.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("Error sending photo")
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Error sending message")
	}
}

// imageFileID выбирает фото максимального размера или картинку-документ.
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

func modeMessage(mode entity.FilterMode) string {
	if mode == entity.FilterRedact {
		return msgModeRedact
	}
	return msgModeBlur
}

package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-phrase-bot/internal/application"
	"telegram-phrase-bot/internal/config"
	"telegram-phrase-bot/internal/domain/ports/adapter"
	"telegram-phrase-bot/internal/domain/ports/repository"
	"telegram-phrase-bot/internal/infra/logging"
)

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

// RealTelegramBotAdapter uses tgbotapi to poll updates and delegates to BotFacade.
type RealTelegramBotAdapter struct {
	bot       *tgbotapi.BotAPI
	cfg       *config.BotConfig
	facade    *application.BotFacade
	stateRepo repository.StateRepository
	log       *zerolog.Logger

	adminID       int64
	updateWorkers int
	cancelPolling context.CancelFunc
}

func NewRealTelegramBotAdapter(
	cfg *config.BotConfig,
	facade *application.BotFacade,
	stateRepo repository.StateRepository,
	logger *zerolog.Logger,
) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	if stateRepo == nil {
		return nil, errors.New("state repo is nil")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}
	l := logger.With().Str("component", "TelegramAdapter").Logger()

	return &RealTelegramBotAdapter{
		bot:           bot,
		cfg:           cfg,
		facade:        facade,
		stateRepo:     stateRepo,
		log:           &l,
		adminID:       cfg.AdminID,
		updateWorkers: workers,
	}, nil
}

func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-updateChan:
					upCtx := logging.WithTraceID(ctx, uuid.NewString())
					if err := r.handleUpdate(upCtx, up); err != nil {
						logging.With(upCtx, r.log).Warn().Err(err).Int("worker", id).Msg("update handling failed")
					}
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (r *RealTelegramBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	// ----- Inline button callbacks -----
	if update.CallbackQuery != nil {
		if update.CallbackQuery.From != nil {
			ctx = logging.WithTgID(ctx, update.CallbackQuery.From.ID)
		}
		return r.handleQuery(ctx, update.CallbackQuery)
	}

	// ----- Regular messages -----
	if update.Message == nil || update.Message.From == nil {
		return nil
	}
	msg := update.Message
	ctx = logging.WithTgID(ctx, msg.From.ID)

	if msg.IsCommand() {
		if fn, ok := r.commandRoutes()[msg.Command()]; ok {
			return fn(ctx, msg)
		}
		return r.SendMessage(ctx, msg.Chat.ID, "Unknown command. Try /start.")
	}

	// Plain text: either a pending continuation (suggest / bulkadd) or noise.
	return r.handlePlainText(ctx, msg)
}

// SendMessage implements the adapter port.
func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, tgID int64, text string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(tgID, text)
	_, err := r.bot.Send(msg)
	return err
}

// SendButtons sends a message with inline buttons.
// - If btn.URL is set, the button opens a link
// - Else if btn.Data is set, the button sends callback data
// - Else a safe fallback uses btn.Text as callback data
func (r *RealTelegramBotAdapter) SendButtons(
	ctx context.Context,
	telegramID int64,
	text string,
	rows [][]adapter.InlineButton,
) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kbRow := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			var kb tgbotapi.InlineKeyboardButton
			switch {
			case btn.URL != "":
				kb = tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL)
			case btn.Data != "":
				kb = tgbotapi.NewInlineKeyboardButtonData(label, btn.Data)
			default:
				kb = tgbotapi.NewInlineKeyboardButtonData(label, label)
			}
			kbRow = append(kbRow, kb)
		}
		kbRows = append(kbRows, kbRow)
	}

	msg := tgbotapi.NewMessage(telegramID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(kbRows...)
	_, err := r.bot.Send(msg)
	return err
}

// editMessage replaces a previously sent message's text, dropping its buttons.
func (r *RealTelegramBotAdapter) editMessage(chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	_, err := r.bot.Send(edit)
	return err
}

func (r *RealTelegramBotAdapter) isAdmin(tgID int64) bool {
	return tgID == r.adminID
}

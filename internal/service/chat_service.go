package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/portfolio-backend/internal/ai"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
)

// Generator отправляет один промпт в модель и возвращает текст ответа.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// SettingReader читает настройки админки.
type SettingReader interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// ChatService проксирует вопрос посетителя в Gemini. Состояние не хранится.
type ChatService struct {
	generator Generator
	document  *ai.Document
	settings  SettingReader
}

// NewChatService создаёт relay. settings может быть nil.
func NewChatService(generator Generator, document *ai.Document, settings SettingReader) *ChatService {
	return &ChatService{generator: generator, document: document, settings: settings}
}

// Relay формирует промпт из контекста и вопроса и возвращает ответ модели.
func (s *ChatService) Relay(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apperror.Validation("Message is required")
	}

	prompt := ai.BuildPrompt(s.context(ctx), message)

	reply, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		log := logger.L().WithField("error", err.Error())
		var upstream *ai.UpstreamError
		if errors.As(err, &upstream) {
			log = log.WithField("status", upstream.StatusCode)
		}
		log.Error("chat: ошибка запроса к Gemini")
		return "", apperror.Wrap(err, apperror.ErrCodeUpstream, err.Error())
	}

	if reply == "" {
		return ai.FallbackReply, nil
	}
	return reply, nil
}

// context возвращает текст из настройки assistant_context, иначе из документа.
func (s *ChatService) context(ctx context.Context) string {
	if s.settings != nil {
		value, ok, err := s.settings.Get(ctx, models.SettingAssistantContext)
		if err != nil {
			logger.L().WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("chat: настройка контекста недоступна, используем документ")
		} else if ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	if s.document == nil {
		return ""
	}
	return s.document.Context
}

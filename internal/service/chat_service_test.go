package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/ai"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func TestChatService_RelayReturnsReplyVerbatim(t *testing.T) {
	gen := new(mockGenerator)
	doc := &ai.Document{Context: "About Bamidele."}
	svc := NewChatService(gen, doc, nil)

	gen.On("GenerateContent", mock.Anything, "About Bamidele.\n\nUser question: What do you do?").
		Return("  I build *web* apps.\n", nil)

	reply, err := svc.Relay(context.Background(), "What do you do?")
	require.NoError(t, err)
	assert.Equal(t, "  I build *web* apps.\n", reply)
	gen.AssertExpectations(t)
}

func TestChatService_EmptyReplyUsesFallback(t *testing.T) {
	gen := new(mockGenerator)
	svc := NewChatService(gen, &ai.Document{Context: "ctx"}, nil)

	gen.On("GenerateContent", mock.Anything, mock.Anything).Return("", nil)

	reply, err := svc.Relay(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, ai.FallbackReply, reply)
}

func TestChatService_EmptyMessageSkipsUpstream(t *testing.T) {
	gen := new(mockGenerator)
	svc := NewChatService(gen, &ai.Document{Context: "ctx"}, nil)

	_, err := svc.Relay(context.Background(), "   \n")
	assert.True(t, apperror.IsValidation(err))
	gen.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything)
}

func TestChatService_UpstreamErrorCarriesDetails(t *testing.T) {
	gen := new(mockGenerator)
	svc := NewChatService(gen, &ai.Document{Context: "ctx"}, nil)

	gen.On("GenerateContent", mock.Anything, mock.Anything).
		Return("", &ai.UpstreamError{StatusCode: 429, Body: "quota"})

	_, err := svc.Relay(context.Background(), "hi")
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.ErrCodeUpstream, appErr.Code)
	assert.Contains(t, appErr.Message, "429")
	assert.Contains(t, appErr.Message, "quota")
}

func TestChatService_MissingKey(t *testing.T) {
	client := ai.NewGeminiClient(ai.GeminiConfig{BaseURL: "http://127.0.0.1:1"})
	svc := NewChatService(client, &ai.Document{Context: "ctx"}, nil)

	_, err := svc.Relay(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ai.ErrMissingAPIKey))
}

func TestChatService_SettingOverridesDocument(t *testing.T) {
	gen := new(mockGenerator)
	settings := newMemorySettings()
	settings.values[models.SettingAssistantContext] = "Fresh context."
	svc := NewChatService(gen, &ai.Document{Context: "Stale context."}, NewSettingsService(settings, nil))

	gen.On("GenerateContent", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "Fresh context.\n\nUser question: ")
	})).Return("ok", nil)

	_, err := svc.Relay(context.Background(), "hi")
	require.NoError(t, err)
	gen.AssertExpectations(t)
}

func TestChatService_SettingFailureFallsBackToDocument(t *testing.T) {
	gen := new(mockGenerator)
	settings := newMemorySettings()
	settings.err = errors.New("db down")
	svc := NewChatService(gen, &ai.Document{Context: "Doc context."}, NewSettingsService(settings, nil))

	gen.On("GenerateContent", mock.Anything, "Doc context.\n\nUser question: hi").Return("ok", nil)

	reply, err := svc.Relay(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}

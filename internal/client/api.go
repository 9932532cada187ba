package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// maxErrorBody ограничивает тело ответа с ошибкой.
const maxErrorBody = 4 << 10

// APIError ответ сервера с кодом не 2xx.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Config параметры клиента.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// API клиент HTTP API сайта.
type API struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New создаёт клиента.
func New(cfg Config) *API {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}

	return &API{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// SetToken задаёт bearer токен для последующих запросов.
func (a *API) SetToken(token string) {
	a.token = token
}

// Token возвращает текущий токен.
func (a *API) Token() string {
	return a.token
}

// Chat отправляет вопрос ассистенту и возвращает текст ответа.
func (a *API) Chat(ctx context.Context, message string) (string, error) {
	var resp struct {
		Response string `json:"response"`
	}
	if err := a.do(ctx, http.MethodPost, "/api/chat", map[string]string{"message": message}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// SignIn входит по паролю и запоминает токен.
func (a *API) SignIn(ctx context.Context, email, password string) (*dto.AuthResult, error) {
	return a.authenticate(ctx, "/api/auth/sign-in", email, password)
}

// SignUp регистрирует пользователя и запоминает токен.
func (a *API) SignUp(ctx context.Context, email, password string) (*dto.AuthResult, error) {
	return a.authenticate(ctx, "/api/auth/sign-up", email, password)
}

func (a *API) authenticate(ctx context.Context, path, email, password string) (*dto.AuthResult, error) {
	var result dto.AuthResult
	body := dto.Credentials{Email: email, Password: password}
	if err := a.do(ctx, http.MethodPost, path, body, &result); err != nil {
		return nil, err
	}
	a.token = result.Token
	return &result, nil
}

// Session возвращает пользователя текущего токена.
func (a *API) Session(ctx context.Context) (*dto.Session, error) {
	var session dto.Session
	if err := a.do(ctx, http.MethodGet, "/api/auth/session", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Resource CRUD одного вида контента в админке.
type Resource[T, In any] struct {
	api  *API
	path string
}

// NewResource создаёт ресурс для /api/admin/{kind}.
func NewResource[T, In any](api *API, kind models.ContentKind) *Resource[T, In] {
	return &Resource[T, In]{api: api, path: "/api/admin/" + string(kind)}
}

func (r *Resource[T, In]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.api.do(ctx, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Resource[T, In]) Create(ctx context.Context, in In) (*T, error) {
	var item T
	if err := r.api.do(ctx, http.MethodPost, r.path, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T, In]) Update(ctx context.Context, id uuid.UUID, in In) (*T, error) {
	var item T
	if err := r.api.do(ctx, http.MethodPut, r.path+"/"+id.String(), in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T, In]) Delete(ctx context.Context, id uuid.UUID) error {
	return r.api.do(ctx, http.MethodDelete, r.path+"/"+id.String(), nil, nil)
}

// do выполняет запрос с JSON телом и декодирует JSON ответ в out.
func (a *API) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: не удалось сериализовать запрос: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: не удалось создать запрос: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: запрос %s %s не удался: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: не удалось разобрать ответ: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	return apiErr
}

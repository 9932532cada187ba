package ai

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed assistant_default.yaml
var defaultDocument []byte

// FallbackReply отдаётся, когда Gemini не вернул ни одного кандидата.
const FallbackReply = "I'm sorry, I couldn't process your request at the moment. Please try again or contact Bamidele directly."

// Social ссылка на профиль владельца.
type Social struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Owner сведения о владельце сайта для hero и контактов.
type Owner struct {
	Name          string   `yaml:"name" json:"name"`
	PreferredName string   `yaml:"preferred_name" json:"preferred_name"`
	Headline      string   `yaml:"headline" json:"headline"`
	Location      string   `yaml:"location" json:"location"`
	Email         string   `yaml:"email" json:"email"`
	Phone         string   `yaml:"phone" json:"phone"`
	Languages     []string `yaml:"languages" json:"languages"`
	Socials       []Social `yaml:"socials" json:"socials"`
}

// Document описывает владельца и контекст, который подставляется в каждый запрос.
type Document struct {
	Owner   Owner  `yaml:"owner"`
	Context string `yaml:"context"`
}

// LoadDocument читает YAML документ. Если файла нет, используется встроенный.
func LoadDocument(path string) (*Document, bool, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			doc, err := ParseDocument(data)
			return doc, true, err
		case !errors.Is(err, fs.ErrNotExist):
			return nil, false, fmt.Errorf("ai: не удалось прочитать документ ассистента %s: %w", path, err)
		}
	}

	doc, err := ParseDocument(defaultDocument)
	return doc, false, err
}

// ParseDocument разбирает YAML и проверяет, что контекст не пустой.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ai: не удалось разобрать документ ассистента: %w", err)
	}

	doc.Context = strings.TrimSpace(doc.Context)
	if doc.Context == "" {
		return nil, errors.New("ai: в документе ассистента пустой context")
	}

	return &doc, nil
}

// BuildPrompt склеивает контекст и вопрос пользователя в один текст запроса.
func BuildPrompt(context, message string) string {
	return context + "\n\nUser question: " + message
}

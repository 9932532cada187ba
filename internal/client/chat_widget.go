package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// GreetingText первое сообщение ассистента в новом чате.
	GreetingText = "Hi! I'm Bamidele's AI assistant. I can answer questions about his experience, skills, projects, or anything you'd like to know from his portfolio. How can I help you today?"

	// ChatFallbackText показывается вместо ответа, если relay не ответил.
	ChatFallbackText = "I'm experiencing some technical difficulties. Please try again in a moment or contact Bamidele directly through the contact information above."

	// EmptyReplyText подставляется, если relay вернул пустой ответ.
	EmptyReplyText = "I'm sorry, I couldn't process your request at the moment. Please try again."

	connectionErrorTitle       = "Connection Error"
	connectionErrorDescription = "Unable to connect to AI assistant. Please try again."
)

// Sender автор сообщения в чате.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message одно сообщение в ленте чата.
type Message struct {
	ID        string
	Text      string
	Sender    Sender
	Timestamp time.Time
}

// Relay отвечает на вопрос посетителя. *API реализует его через POST /api/chat.
type Relay interface {
	Chat(ctx context.Context, message string) (string, error)
}

// Notifier показывает пользователю уведомление.
type Notifier interface {
	Notify(n Notification)
}

// Notification уведомление. Destructive помечает ошибки.
type Notification struct {
	Title       string
	Description string
	Destructive bool
}

// NotifierFunc адаптер функции к Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// ChatWidget состояние чат-виджета: свёрнут или раскрыт, ждёт ли ответа.
// Лента живёт в памяти и переживает сворачивание.
type ChatWidget struct {
	relay    Relay
	notifier Notifier
	now      func() time.Time

	mu         sync.Mutex
	expanded   bool
	sending    bool
	transcript []Message
}

// NewChatWidget создаёт свёрнутый виджет с приветствием в ленте.
func NewChatWidget(relay Relay, notifier Notifier) *ChatWidget {
	w := &ChatWidget{
		relay:    relay,
		notifier: notifier,
		now:      time.Now,
	}
	w.transcript = []Message{{ID: "1", Text: GreetingText, Sender: SenderAI, Timestamp: w.now()}}
	return w
}

// Open раскрывает виджет.
func (w *ChatWidget) Open() {
	w.mu.Lock()
	w.expanded = true
	w.mu.Unlock()
}

// Collapse сворачивает виджет, лента сохраняется.
func (w *ChatWidget) Collapse() {
	w.mu.Lock()
	w.expanded = false
	w.mu.Unlock()
}

// Expanded сообщает, раскрыт ли виджет.
func (w *ChatWidget) Expanded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.expanded
}

// Sending сообщает, ждёт ли виджет ответа.
func (w *ChatWidget) Sending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sending
}

// Transcript возвращает копию ленты.
func (w *ChatWidget) Transcript() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Message, len(w.transcript))
	copy(out, w.transcript)
	return out
}

// Send отправляет сообщение и дописывает в ленту ответ ассистента.
// Пустой текст, свёрнутый виджет или незавершённая отправка ничего не делают,
// тогда ok == false.
func (w *ChatWidget) Send(ctx context.Context, text string) (reply Message, ok bool) {
	w.mu.Lock()
	if strings.TrimSpace(text) == "" || !w.expanded || w.sending {
		w.mu.Unlock()
		return Message{}, false
	}
	w.sending = true
	w.transcript = append(w.transcript, Message{ID: uuid.NewString(), Text: text, Sender: SenderUser, Timestamp: w.now()})
	w.mu.Unlock()

	answer, err := w.relay.Chat(ctx, text)

	reply = Message{ID: uuid.NewString(), Sender: SenderAI}
	switch {
	case err != nil:
		reply.Text = ChatFallbackText
	case answer == "":
		reply.Text = EmptyReplyText
	default:
		reply.Text = answer
	}

	w.mu.Lock()
	reply.Timestamp = w.now()
	w.transcript = append(w.transcript, reply)
	w.sending = false
	w.mu.Unlock()

	if err != nil && w.notifier != nil {
		w.notifier.Notify(Notification{
			Title:       connectionErrorTitle,
			Description: connectionErrorDescription,
			Destructive: true,
		})
	}

	return reply, true
}

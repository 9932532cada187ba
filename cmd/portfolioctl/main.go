// Команда portfolioctl работает с API сайта из терминала.
//
//	portfolioctl chat
//	portfolioctl login -email owner@example.com -password 'secret123'
//	portfolioctl -token $TOKEN list works
//	portfolioctl -token $TOKEN delete posts 6f1c...
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/portfolio-backend/internal/client"
	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

const usage = `usage: portfolioctl [-api URL] [-token TOKEN] <command> [args]

commands:
  chat                  диалог с ассистентом
  login                 вход, печатает токен (-email, -password)
  list <kind>           список записей: services, works, tools, posts
  delete <kind> <id>    удалить запись с подтверждением
`

func main() {
	apiURL := flag.String("api", envOr("PORTFOLIO_API_URL", "http://localhost:8080"), "адрес API")
	token := flag.String("token", os.Getenv("PORTFOLIO_TOKEN"), "bearer токен администратора")
	timeout := flag.Duration("timeout", 90*time.Second, "таймаут одного запроса")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	logger.Init("info")
	logger.SetTextFormatter()
	lg := logger.L()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	api := client.New(client.Config{BaseURL: *apiURL, Token: *token, Timeout: *timeout})
	notifier := client.NotifierFunc(func(n client.Notification) {
		entry := lg.WithField("title", n.Title)
		if n.Destructive {
			entry.Error(n.Description)
			return
		}
		entry.Info(n.Description)
	})

	ctx := context.Background()
	in := bufio.NewReader(os.Stdin)

	var err error
	switch args[0] {
	case "chat":
		err = runChat(ctx, api, notifier, in, os.Stdout)
	case "login":
		err = runLogin(ctx, api, args[1:])
	case "list":
		if len(args) != 2 {
			flag.Usage()
			os.Exit(2)
		}
		err = runList(ctx, api, notifier, models.ContentKind(args[1]), os.Stdout)
	case "delete":
		if len(args) != 3 {
			flag.Usage()
			os.Exit(2)
		}
		err = runDelete(ctx, api, notifier, models.ContentKind(args[1]), args[2], in)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		lg.WithField("command", args[0]).Fatal(err)
	}
}

func runChat(ctx context.Context, api *client.API, notifier client.Notifier, in *bufio.Reader, out io.Writer) error {
	widget := client.NewChatWidget(api, notifier)
	widget.Open()

	for _, m := range widget.Transcript() {
		fmt.Fprintf(out, "ai> %s\n", m.Text)
	}

	for {
		fmt.Fprint(out, "you> ")
		line, err := in.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if reply, ok := widget.Send(ctx, line); ok {
				fmt.Fprintf(out, "ai> %s\n", reply.Text)
			}
		}
		if err == io.EOF {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func runLogin(ctx context.Context, api *client.API, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", os.Getenv("PORTFOLIO_PASSWORD"), "пароль")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login: нужны -email и -password")
	}

	if _, err := api.SignIn(ctx, *email, *password); err != nil {
		return err
	}
	session, err := api.Session(ctx)
	if err != nil {
		return err
	}

	logger.L().WithFields(logrus.Fields{
		"email":    session.User.Email,
		"is_admin": session.IsAdmin,
	}).Info("login: вход выполнен")
	fmt.Println(api.Token())
	return nil
}

func runList(ctx context.Context, api *client.API, notifier client.Notifier, kind models.ContentKind, out io.Writer) error {
	switch kind {
	case models.KindServices:
		return listKind(ctx, newManager[models.Service, dto.ServiceInput](api, kind, notifier), out)
	case models.KindWorks:
		return listKind(ctx, newManager[models.Work, dto.WorkInput](api, kind, notifier), out)
	case models.KindTools:
		return listKind(ctx, newManager[models.Tool, dto.ToolInput](api, kind, notifier), out)
	case models.KindPosts:
		return listKind(ctx, newManager[models.BlogPost, dto.BlogPostInput](api, kind, notifier), out)
	}
	return fmt.Errorf("неизвестный вид контента %q", kind)
}

func runDelete(ctx context.Context, api *client.API, notifier client.Notifier, kind models.ContentKind, rawID string, in *bufio.Reader) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("некорректный id %q: %w", rawID, err)
	}

	confirm := func(prompt string) bool {
		fmt.Printf("%s [y/N] ", prompt)
		answer, _ := in.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}

	var deleted bool
	switch kind {
	case models.KindServices:
		deleted, err = newManager[models.Service, dto.ServiceInput](api, kind, notifier).Delete(ctx, id, confirm)
	case models.KindWorks:
		deleted, err = newManager[models.Work, dto.WorkInput](api, kind, notifier).Delete(ctx, id, confirm)
	case models.KindTools:
		deleted, err = newManager[models.Tool, dto.ToolInput](api, kind, notifier).Delete(ctx, id, confirm)
	case models.KindPosts:
		deleted, err = newManager[models.BlogPost, dto.BlogPostInput](api, kind, notifier).Delete(ctx, id, confirm)
	default:
		return fmt.Errorf("неизвестный вид контента %q", kind)
	}
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Println("отменено")
	}
	return nil
}

func newManager[T, In any](api *client.API, kind models.ContentKind, notifier client.Notifier) *client.Manager[T, In] {
	title := strings.TrimSuffix(string(kind), "s")
	return client.NewManager[T, In](title, client.NewResource[T, In](api, kind), notifier)
}

func listKind[T, In any](ctx context.Context, m *client.Manager[T, In], out io.Writer) error {
	if err := m.Refresh(ctx); err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(m.Items())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

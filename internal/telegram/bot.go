package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"bakeplan/internal/client"
	"bakeplan/internal/config"
	"bakeplan/internal/planner"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API around the planning client. Because the client
// carries its own local fallback, the bot keeps answering even when the
// planning server is down.
type Bot struct {
	api     *tgbotapi.BotAPI
	planner *client.Client
	cfg     *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, planClient *client.Client) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:     bot,
		planner: planClient,
		cfg:     cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}

	if !isAllowed {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	if strings.HasPrefix(msg.Text, "/plan") {
		b.handlePlanRequest(msg)
		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, "Send /plan to compute today's production plan.\nOptional: branch (branch-a/b/c), weather (sunny/rain/cloudy/overcast), `special`, and flour=/butter=/sugar=/eggs=/capacity= overrides.")
	reply.ParseMode = "Markdown"
	b.api.Send(reply)
}

func (b *Bot) handlePlanRequest(msg *tgbotapi.Message) {
	statusText := "🥐 *Planning...* \n(Forecasting demand and allocating capacity)"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	req := parsePlanArgs(strings.TrimPrefix(msg.Text, "/plan"))
	outcome := b.planner.Plan(context.Background(), req)

	finalText := formatOutcomeMarkdown(outcome)
	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

// parsePlanArgs reads optional tokens out of the command text. Unknown
// tokens are ignored so a slightly malformed command still yields a plan.
func parsePlanArgs(args string) planner.Request {
	req := planner.Request{Branch: "branch-a", Weather: "sunny"}
	for _, token := range strings.Fields(args) {
		switch {
		case token == "special":
			req.SpecialDay = true
		case strings.HasPrefix(token, "branch-"):
			req.Branch = token
		case token == "sunny" || token == "rain" || token == "cloudy" || token == "overcast":
			req.Weather = token
		case strings.Contains(token, "="):
			parts := strings.SplitN(token, "=", 2)
			v, err := strconv.Atoi(parts[1])
			if err != nil {
				continue
			}
			switch parts[0] {
			case "flour":
				req.Inputs.Flour = &v
			case "butter":
				req.Inputs.Butter = &v
			case "sugar":
				req.Inputs.Sugar = &v
			case "eggs":
				req.Inputs.Eggs = &v
			case "capacity":
				req.Inputs.Capacity = &v
			}
		}
	}
	return req
}

func formatOutcomeMarkdown(o *client.Outcome) string {
	var sb strings.Builder
	sb.WriteString("🥖 *Production Plan*\n")
	sb.WriteString(fmt.Sprintf("_source: %s_\n\n", o.Source))

	for _, item := range o.Result.Plan {
		sb.WriteString(fmt.Sprintf("*%s*: %d units (profit/unit %.2f)\n", item.Product, item.Quantity, item.ProfitPerUnit))
		if item.PromotionSuggestion != nil {
			sb.WriteString(fmt.Sprintf("_%s_\n", *item.PromotionSuggestion))
		}
	}
	if len(o.Result.Plan) == 0 {
		sb.WriteString("_No production possible with the given stock and capacity._\n")
	}

	if o.ID != "" {
		sb.WriteString(fmt.Sprintf("\nPlan id: `%s`", o.ID))
	}
	if o.Notice != "" {
		sb.WriteString(fmt.Sprintf("\n⚠️ _Computed locally: %s_", o.Notice))
	}
	return sb.String()
}

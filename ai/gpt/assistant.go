package gpt

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/config"
	"ShelfGuardian/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"github.com/sashabaranov/go-openai"
	"log/slog"
	"strings"
	"time"
)

const noResults = "No results found."

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Inventory is the product storage the tools operate on.
type Inventory interface {
	CreateProduct(ctx context.Context, product *entity.Product) error
	ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error)
	ListProductsByExpiry(ctx context.Context, filter entity.ExpiryFilter) ([]entity.Product, error)
	DeleteProductsByName(ctx context.Context, userID int64, name string) (int64, error)
}

type Publisher interface {
	Publish(userID int64, event entity.Event)
}

type Metrics interface {
	ToolCall(tool, status string)
}

type Assistant struct {
	client    ChatClient
	model     string
	maxRounds int
	inventory Inventory
	publisher Publisher
	metrics   Metrics
	now       func() time.Time
	log       *slog.Logger
}

func NewAssistant(conf *config.Config, logger *slog.Logger) *Assistant {
	clientConfig := openai.DefaultConfig(conf.OpenAI.ApiKey)
	if conf.OpenAI.BaseURL != "" {
		clientConfig.BaseURL = conf.OpenAI.BaseURL
	}
	return newAssistant(openai.NewClientWithConfig(clientConfig), conf, logger)
}

func newAssistant(client ChatClient, conf *config.Config, logger *slog.Logger) *Assistant {
	rounds := conf.OpenAI.MaxToolRounds
	if rounds <= 0 {
		rounds = 5
	}
	return &Assistant{
		client:    client,
		model:     conf.OpenAI.Model,
		maxRounds: rounds,
		now:       time.Now,
		log:       logger.With(sl.Module("assistant")),
	}
}

func (a *Assistant) SetInventory(inventory Inventory) {
	a.inventory = inventory
}

func (a *Assistant) SetPublisher(publisher Publisher) {
	a.publisher = publisher
}

func (a *Assistant) SetMetrics(metrics Metrics) {
	a.metrics = metrics
}

// Ask runs one conversation turn: the model may call tools for several
// rounds, then a tool-less completion phrases the final answer.
func (a *Assistant) Ask(ctx context.Context, user *entity.User, message string) (string, error) {
	if a.inventory == nil {
		return "", fmt.Errorf("inventory not initialized")
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: message},
	}

	log := a.log.With(slog.Int64("user_id", user.ID))

	for round := 0; ; round++ {
		reply, err := a.complete(ctx, messages, true)
		if err != nil {
			return "", err
		}
		if len(reply.ToolCalls) == 0 {
			messages = append(messages, reply)
			break
		}
		if round >= a.maxRounds {
			log.With(slog.Int("rounds", round)).Warn("tool round limit reached")
			break
		}

		messages = append(messages, reply)
		for _, call := range reply.ToolCalls {
			output := a.handleCommand(ctx, user, call.Function.Name, call.Function.Arguments)
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    output,
				Name:       call.Function.Name,
				ToolCallID: call.ID,
			})
		}
	}

	return a.summarize(ctx, messages)
}

func (a *Assistant) summarize(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	var transcript strings.Builder
	transcript.WriteString(summaryPrompt)
	var toolOutputs []string

	for _, m := range messages[1:] {
		switch m.Role {
		case openai.ChatMessageRoleTool:
			toolOutputs = append(toolOutputs, m.Content)
			fmt.Fprintf(&transcript, "\nTOOL: %s", m.Content)
		case openai.ChatMessageRoleUser:
			fmt.Fprintf(&transcript, "\nHUMAN: %s", m.Content)
		case openai.ChatMessageRoleAssistant:
			if m.Content != "" {
				fmt.Fprintf(&transcript, "\nAI: %s", m.Content)
			}
		}
	}

	reply, err := a.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: transcript.String()},
	}, false)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(reply.Content)
	if text != "" {
		return text, nil
	}
	if len(toolOutputs) > 0 {
		return strings.Join(toolOutputs, "\n"), nil
	}
	return noResults, nil
}

func (a *Assistant) complete(ctx context.Context, messages []openai.ChatCompletionMessage, withTools bool) (openai.ChatCompletionMessage, error) {
	request := openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
	}
	if withTools {
		request.Tools = tools
	}

	resp, err := a.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return openai.ChatCompletionMessage{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return openai.ChatCompletionMessage{}, errors.New("chat completion: no choices")
	}
	return resp.Choices[0].Message, nil
}

func (a *Assistant) today() entity.Date {
	return entity.DateOf(a.now())
}

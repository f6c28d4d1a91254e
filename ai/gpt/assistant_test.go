package gpt

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/config"
	"ShelfGuardian/internal/database/memory"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	replies  []openai.ChatCompletionMessage
	err      error
	requests []openai.ChatCompletionRequest
}

func (c *scriptedClient) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.requests = append(c.requests, request)
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	if len(c.replies) == 0 {
		return openai.ChatCompletionResponse{}, errors.New("no scripted reply")
	}
	reply := c.replies[0]
	c.replies = c.replies[1:]
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: reply}},
	}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.Event
}

func (p *recordingPublisher) Publish(_ int64, event entity.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

type countingMetrics struct {
	calls map[string]int
}

func (m *countingMetrics) ToolCall(tool, status string) {
	m.calls[tool+":"+status]++
}

var testToday = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.Local)

func newTestAssistant(client ChatClient) (*Assistant, *memory.Store) {
	conf := &config.Config{}
	conf.OpenAI.Model = "test-model"
	conf.OpenAI.MaxToolRounds = 3

	store := memory.New()
	a := newAssistant(client, conf, slog.New(slog.NewTextHandler(io.Discard, nil)))
	a.SetInventory(store)
	a.now = func() time.Time { return testToday }
	return a, store
}

func toolCall(id, name, args string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleAssistant,
		ToolCalls: []openai.ToolCall{{
			ID:       id,
			Type:     openai.ToolTypeFunction,
			Function: openai.FunctionCall{Name: name, Arguments: args},
		}},
	}
}

func text(content string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}
}

func decodeItems(t *testing.T, payload string) []string {
	t.Helper()
	var out itemsOutput
	require.NoError(t, json.Unmarshal([]byte(payload), &out))
	return out.Items
}

func decodeStatus(t *testing.T, payload string) string {
	t.Helper()
	var out statusOutput
	require.NoError(t, json.Unmarshal([]byte(payload), &out))
	return out.Status
}

func TestAskWithoutTools(t *testing.T) {
	client := &scriptedClient{replies: []openai.ChatCompletionMessage{
		text("Hello!"),
		text("Hi there."),
	}}
	a, _ := newTestAssistant(client)

	reply, err := a.Ask(context.Background(), &entity.User{ID: 1}, "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there.", reply)

	require.Len(t, client.requests, 2)
	assert.NotEmpty(t, client.requests[0].Tools)
	assert.Empty(t, client.requests[1].Tools)
}

func TestAskRunsToolsThenSummarizes(t *testing.T) {
	client := &scriptedClient{replies: []openai.ChatCompletionMessage{
		toolCall("call-1", toolAddItem, `{"item_description":"add cow milk expiring in 3 days"}`),
		text(""),
		text("Added Cow Milk, expiring 22-10-2026."),
	}}
	a, store := newTestAssistant(client)
	publisher := &recordingPublisher{}
	a.SetPublisher(publisher)

	reply, err := a.Ask(context.Background(), &entity.User{ID: 5}, "add cow milk expiring in 3 days")
	require.NoError(t, err)
	assert.Equal(t, "Added Cow Milk, expiring 22-10-2026.", reply)

	products, err := store.ListProducts(context.Background(), entity.ProductFilter{UserID: 5})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Cow Milk", products[0].Name)
	assert.Equal(t, entity.CategoryFood, products[0].Category)
	assert.Equal(t, "2026-10-22", products[0].ExpiryDate.String())
	assert.Equal(t, 1, products[0].Quantity)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, entity.EventProductCreated, publisher.events[0].Type)

	second := client.requests[1].Messages
	last := second[len(second)-1]
	assert.Equal(t, openai.ChatMessageRoleTool, last.Role)
	assert.Equal(t, "call-1", last.ToolCallID)
}

func TestSummaryFallsBackToToolOutput(t *testing.T) {
	client := &scriptedClient{replies: []openai.ChatCompletionMessage{
		toolCall("call-1", toolExpiredItems, `{}`),
		text(""),
		text("   "),
	}}
	a, _ := newTestAssistant(client)

	reply, err := a.Ask(context.Background(), &entity.User{ID: 1}, "what expired?")
	require.NoError(t, err)
	assert.Equal(t, []string{"No expired products found. Everything is up to date!"}, decodeItems(t, reply))
}

func TestSummaryFallsBackToNoResults(t *testing.T) {
	client := &scriptedClient{replies: []openai.ChatCompletionMessage{
		text("hi"),
		text(""),
	}}
	a, _ := newTestAssistant(client)

	reply, err := a.Ask(context.Background(), &entity.User{ID: 1}, "hi")
	require.NoError(t, err)
	assert.Equal(t, noResults, reply)
}

func TestAskStopsAfterMaxRounds(t *testing.T) {
	call := toolCall("call", toolExpiryCheck, `{}`)
	client := &scriptedClient{replies: []openai.ChatCompletionMessage{
		call, call, call, call, text("done"),
	}}
	a, _ := newTestAssistant(client)

	reply, err := a.Ask(context.Background(), &entity.User{ID: 1}, "loop")
	require.NoError(t, err)
	assert.Equal(t, "done", reply)
	assert.Len(t, client.requests, 5)
}

func TestAskPropagatesClientError(t *testing.T) {
	a, _ := newTestAssistant(&scriptedClient{err: errors.New("boom")})

	_, err := a.Ask(context.Background(), &entity.User{ID: 1}, "hi")
	assert.Error(t, err)
}

func TestExpiryCheckIncludesExpired(t *testing.T) {
	a, store := newTestAssistant(&scriptedClient{})
	ctx := context.Background()
	today := entity.DateOf(testToday)

	for _, p := range []entity.Product{
		{Name: "Old Bread", Category: entity.CategoryFood, ExpiryDate: today.AddDays(-2), UserID: 1},
		{Name: "Milk", Category: entity.CategoryFood, ExpiryDate: today.AddDays(7), UserID: 1},
		{Name: "Rice", Category: entity.CategoryFood, ExpiryDate: today.AddDays(8), UserID: 1},
		{Name: "Eggs", Category: entity.CategoryFood, ExpiryDate: today, UserID: 2},
	} {
		p := p
		require.NoError(t, store.CreateProduct(ctx, &p))
	}

	out := a.handleCommand(ctx, &entity.User{ID: 1}, toolExpiryCheck, "{}")
	assert.Equal(t, []string{
		"Old Bread (FOOD) → expires on 17-10-2026",
		"Milk (FOOD) → expires on 26-10-2026",
	}, decodeItems(t, out))
}

func TestCategoryTools(t *testing.T) {
	a, store := newTestAssistant(&scriptedClient{})
	ctx := context.Background()
	today := entity.DateOf(testToday)
	user := &entity.User{ID: 1}

	require.NoError(t, store.CreateProduct(ctx, &entity.Product{Name: "Syrup", Category: entity.CategoryMedicine, ExpiryDate: today.AddDays(30), UserID: 1}))
	require.NoError(t, store.CreateProduct(ctx, &entity.Product{Name: "Tablet", Category: entity.CategoryMedicine, ExpiryDate: today.AddDays(2), UserID: 1}))

	all := decodeItems(t, a.handleCommand(ctx, user, toolCategoryCheck, `{"category":"drugs"}`))
	assert.Len(t, all, 2)

	soon := decodeItems(t, a.handleCommand(ctx, user, toolCategoryExpiryCheck, `{"category":"medicine"}`))
	assert.Equal(t, []string{"Tablet (MEDICINE) → expires on 21-10-2026"}, soon)

	invalid := decodeItems(t, a.handleCommand(ctx, user, toolCategoryCheck, `{"category":"toys"}`))
	assert.Equal(t, []string{"Invalid category 'toys'. Try: FOOD, MEDICINE, or MISCELLANEOUS."}, invalid)

	empty := decodeItems(t, a.handleCommand(ctx, user, toolCategoryCheck, `{"category":"food"}`))
	assert.Equal(t, []string{"No products found in category 'FOOD' for this user."}, empty)
}

func TestCategoryToolsRequireCategory(t *testing.T) {
	a, store := newTestAssistant(&scriptedClient{})
	ctx := context.Background()
	today := entity.DateOf(testToday)
	user := &entity.User{ID: 1}

	require.NoError(t, store.CreateProduct(ctx, &entity.Product{Name: "Pills", Category: entity.CategoryMedicine, ExpiryDate: today.AddDays(2), UserID: 1}))
	require.NoError(t, store.CreateProduct(ctx, &entity.Product{Name: "Bread", Category: entity.CategoryFood, ExpiryDate: today.AddDays(2), UserID: 1}))

	invalid := []string{"Invalid category ''. Try: FOOD, MEDICINE, or MISCELLANEOUS."}
	for _, tool := range []string{toolCategoryCheck, toolCategoryExpiryCheck} {
		for _, args := range []string{"{}", `{"category":""}`, ""} {
			assert.Equal(t, invalid, decodeItems(t, a.handleCommand(ctx, user, tool, args)), tool+" "+args)
		}
	}
}

func TestAddItemRejectsOutOfRangeExpiry(t *testing.T) {
	a, store := newTestAssistant(&scriptedClient{})
	ctx := context.Background()

	status := decodeStatus(t, a.handleCommand(ctx, &entity.User{ID: 1}, toolAddItem, `{"item_description":"add juice in 999999999 days"}`))
	assert.Contains(t, status, "Couldn't determine expiry date")

	products, err := store.ListProducts(ctx, entity.ProductFilter{UserID: 1})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestExpiredItemsExcludesToday(t *testing.T) {
	a, store := newTestAssistant(&scriptedClient{})
	ctx := context.Background()
	today := entity.DateOf(testToday)

	require.NoError(t, store.CreateProduct(ctx, &entity.Product{Name: "Juice", Category: entity.CategoryFood, ExpiryDate: today.AddDays(-1), UserID: 1}))
	require.NoError(t, store.CreateProduct(ctx, &entity.Product{Name: "Butter", Category: entity.CategoryFood, ExpiryDate: today, UserID: 1}))

	out := decodeItems(t, a.handleCommand(ctx, &entity.User{ID: 1}, toolExpiredItems, ""))
	assert.Equal(t, []string{"Juice (FOOD) → expired on 18-10-2026"}, out)
}

func TestAddItemWithoutExpiry(t *testing.T) {
	a, store := newTestAssistant(&scriptedClient{})
	ctx := context.Background()

	status := decodeStatus(t, a.handleCommand(ctx, &entity.User{ID: 1}, toolAddItem, `{"item_description":"add bread"}`))
	assert.Contains(t, status, "Couldn't determine expiry date")

	products, err := store.ListProducts(ctx, entity.ProductFilter{UserID: 1})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestRemoveItem(t *testing.T) {
	a, store := newTestAssistant(&scriptedClient{})
	ctx := context.Background()
	metrics := &countingMetrics{calls: map[string]int{}}
	a.SetMetrics(metrics)

	require.NoError(t, store.CreateProduct(ctx, &entity.Product{Name: "Bread", UserID: 1}))

	status := decodeStatus(t, a.handleCommand(ctx, &entity.User{ID: 1}, toolRemoveItem, `{"item_name":"bread"}`))
	assert.Equal(t, "Removed 1 item(s) named 'bread'.", status)

	status = decodeStatus(t, a.handleCommand(ctx, &entity.User{ID: 1}, toolRemoveItem, `{"item_name":"bread"}`))
	assert.Equal(t, "No product named 'bread' found.", status)

	assert.Equal(t, 2, metrics.calls[toolRemoveItem+":ok"])
}

func TestUnknownAndMalformedCommands(t *testing.T) {
	a, _ := newTestAssistant(&scriptedClient{})
	metrics := &countingMetrics{calls: map[string]int{}}
	a.SetMetrics(metrics)
	ctx := context.Background()

	assert.Contains(t, decodeStatus(t, a.handleCommand(ctx, &entity.User{ID: 1}, "drop_table", "{}")), "Unknown tool")
	assert.Contains(t, decodeStatus(t, a.handleCommand(ctx, &entity.User{ID: 1}, toolAddItem, "{not json")), "Error handling command")

	assert.Equal(t, 1, metrics.calls["drop_table:unknown"])
	assert.Equal(t, 1, metrics.calls[toolAddItem+":error"])
}

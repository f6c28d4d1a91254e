package gpt

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/extract"
	"ShelfGuardian/internal/lib/sl"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

type itemsOutput struct {
	Items []string `json:"items"`
}

type statusOutput struct {
	Status string `json:"status"`
}

type categoryArgs struct {
	Category string `json:"category"`
}

type addItemArgs struct {
	ItemDescription string `json:"item_description"`
}

type removeItemArgs struct {
	ItemName string `json:"item_name"`
}

// handleCommand executes a tool call for user and returns the JSON payload
// handed back to the model. Failures are reported in the payload.
func (a *Assistant) handleCommand(ctx context.Context, user *entity.User, name, args string) string {
	log := a.log.With(
		slog.Int64("user_id", user.ID),
		slog.String("command", name),
		slog.String("args", args),
	)
	log.Debug("handling command")

	var output interface{}
	var err error

	switch name {
	case toolExpiryCheck:
		output, err = a.expiryCheck(ctx, user, "")
	case toolCategoryCheck:
		output, err = a.categoryCheck(ctx, user, args)
	case toolCategoryExpiryCheck:
		output, err = a.categoryExpiryCheck(ctx, user, args)
	case toolAddItem:
		output, err = a.addItem(ctx, user, args)
	case toolExpiredItems:
		output, err = a.expiredItems(ctx, user)
	case toolRemoveItem:
		output, err = a.removeItem(ctx, user, args)
	default:
		a.observe(name, "unknown")
		log.Warn("unknown command")
		return mustJSON(statusOutput{Status: fmt.Sprintf("Unknown tool %s", name)})
	}

	if err != nil {
		a.observe(name, "error")
		log.Error("handling command", sl.Err(err))
		return mustJSON(statusOutput{Status: fmt.Sprintf("Error handling command %s: %v", name, err)})
	}

	a.observe(name, "ok")
	return mustJSON(output)
}

func (a *Assistant) observe(tool, status string) {
	if a.metrics != nil {
		a.metrics.ToolCall(tool, status)
	}
}

func decodeArgs(args string, v interface{}) error {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(args), v); err != nil {
		return fmt.Errorf("decoding arguments: %w", err)
	}
	return nil
}

func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"status":%q}`, err.Error())
	}
	return string(data)
}

func invalidCategory(category string) itemsOutput {
	return itemsOutput{Items: []string{
		fmt.Sprintf("Invalid category '%s'. Try: FOOD, MEDICINE, or MISCELLANEOUS.", category),
	}}
}

func lines(products []entity.Product, verb string) []string {
	result := make([]string, 0, len(products))
	for i := range products {
		result = append(result, products[i].Line(verb))
	}
	return result
}

// expiryCheck lists products expiring within the window, already expired
// ones included. An empty category means all categories.
func (a *Assistant) expiryCheck(ctx context.Context, user *entity.User, category entity.Category) (itemsOutput, error) {
	filter := entity.ExpiryFilter{
		UserID:   user.ID,
		To:       a.today().AddDays(expiryWindowDays),
		Category: category,
	}

	products, err := a.inventory.ListProductsByExpiry(ctx, filter)
	if err != nil {
		return itemsOutput{}, err
	}
	if len(products) == 0 {
		if filter.Category != "" {
			return itemsOutput{Items: []string{fmt.Sprintf("No %s items expiring within %d days.", filter.Category, expiryWindowDays)}}, nil
		}
		return itemsOutput{Items: []string{fmt.Sprintf("No products expiring within the next %d days.", expiryWindowDays)}}, nil
	}
	return itemsOutput{Items: lines(products, "expires")}, nil
}

func (a *Assistant) categoryExpiryCheck(ctx context.Context, user *entity.User, args string) (itemsOutput, error) {
	var req categoryArgs
	if err := decodeArgs(args, &req); err != nil {
		return itemsOutput{}, err
	}
	c, ok := extract.NormalizeCategory(req.Category)
	if !ok {
		return invalidCategory(req.Category), nil
	}
	return a.expiryCheck(ctx, user, c)
}

func (a *Assistant) categoryCheck(ctx context.Context, user *entity.User, args string) (itemsOutput, error) {
	var req categoryArgs
	if err := decodeArgs(args, &req); err != nil {
		return itemsOutput{}, err
	}
	c, ok := extract.NormalizeCategory(req.Category)
	if !ok {
		return invalidCategory(req.Category), nil
	}

	products, err := a.inventory.ListProductsByExpiry(ctx, entity.ExpiryFilter{
		UserID:   user.ID,
		Category: c,
	})
	if err != nil {
		return itemsOutput{}, err
	}
	if len(products) == 0 {
		return itemsOutput{Items: []string{fmt.Sprintf("No products found in category '%s' for this user.", c)}}, nil
	}
	return itemsOutput{Items: lines(products, "expires")}, nil
}

func (a *Assistant) expiredItems(ctx context.Context, user *entity.User) (itemsOutput, error) {
	products, err := a.inventory.ListProductsByExpiry(ctx, entity.ExpiryFilter{
		UserID: user.ID,
		To:     a.today().AddDays(-1),
	})
	if err != nil {
		return itemsOutput{}, err
	}
	if len(products) == 0 {
		return itemsOutput{Items: []string{"No expired products found. Everything is up to date!"}}, nil
	}
	return itemsOutput{Items: lines(products, "expired")}, nil
}

func (a *Assistant) addItem(ctx context.Context, user *entity.User, args string) (statusOutput, error) {
	var req addItemArgs
	if err := decodeArgs(args, &req); err != nil {
		return statusOutput{}, err
	}

	item, err := extract.Parse(req.ItemDescription, a.today())
	if errors.Is(err, extract.ErrNoExpiry) {
		return statusOutput{Status: fmt.Sprintf(
			"Couldn't determine expiry date from: '%s'. Please use 'in X days', 'tomorrow', 'day after tomorrow', or an explicit date.",
			req.ItemDescription,
		)}, nil
	}
	if err != nil {
		return statusOutput{}, err
	}

	product := &entity.Product{
		Name:       item.Name,
		Category:   item.Category,
		ExpiryDate: item.ExpiryDate,
		Quantity:   1,
		UserID:     user.ID,
	}
	if err = a.inventory.CreateProduct(ctx, product); err != nil {
		return statusOutput{}, fmt.Errorf("adding product: %w", err)
	}

	if a.publisher != nil {
		a.publisher.Publish(user.ID, entity.NewEvent(entity.EventProductCreated, product))
	}

	return statusOutput{Status: fmt.Sprintf(
		"Added '%s' to category '%s' with expiry on %s.",
		product.Name, product.Category, product.ExpiryDate.Format("02-01-2006"),
	)}, nil
}

func (a *Assistant) removeItem(ctx context.Context, user *entity.User, args string) (statusOutput, error) {
	var req removeItemArgs
	if err := decodeArgs(args, &req); err != nil {
		return statusOutput{}, err
	}
	name := strings.TrimSpace(req.ItemName)
	if name == "" {
		return statusOutput{Status: "Please tell me which item to remove."}, nil
	}

	deleted, err := a.inventory.DeleteProductsByName(ctx, user.ID, name)
	if err != nil {
		return statusOutput{}, fmt.Errorf("removing product: %w", err)
	}
	if deleted == 0 {
		return statusOutput{Status: fmt.Sprintf("No product named '%s' found.", name)}, nil
	}

	if a.publisher != nil {
		a.publisher.Publish(user.ID, entity.NewEvent(entity.EventProductDeleted, map[string]interface{}{
			"name":  name,
			"count": deleted,
		}))
	}

	return statusOutput{Status: fmt.Sprintf("Removed %d item(s) named '%s'.", deleted, name)}, nil
}

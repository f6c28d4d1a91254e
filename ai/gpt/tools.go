package gpt

import (
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const (
	toolExpiryCheck         = "expiry_check_tool"
	toolCategoryCheck       = "category_check_tool"
	toolCategoryExpiryCheck = "category_expiry_check_tool"
	toolAddItem             = "add_item_tool"
	toolExpiredItems        = "expired_items_tool"
	toolRemoveItem          = "remove_item_tool"
)

// expiryWindowDays is how far ahead the expiry tools look.
const expiryWindowDays = 7

var categoryParam = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"category": {
			Type:        jsonschema.String,
			Description: "FOOD, MEDICINE or MISCELLANEOUS",
		},
	},
	Required: []string{"category"},
}

var noParams = jsonschema.Definition{
	Type:       jsonschema.Object,
	Properties: map[string]jsonschema.Definition{},
}

var tools = []openai.Tool{
	{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        toolExpiryCheck,
			Description: "List the user's products expiring within the next 7 days, including already expired ones.",
			Parameters:  noParams,
		},
	},
	{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        toolCategoryCheck,
			Description: "List the user's products in a category.",
			Parameters:  categoryParam,
		},
	},
	{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        toolCategoryExpiryCheck,
			Description: "List the user's products of a category expiring within the next 7 days.",
			Parameters:  categoryParam,
		},
	},
	{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        toolAddItem,
			Description: "Add a product from a free-text description such as 'bread expiring tomorrow'.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"item_description": {
						Type:        jsonschema.String,
						Description: "Item name and expiry phrase: 'in N days', 'tomorrow', 'day after tomorrow' or a date",
					},
				},
				Required: []string{"item_description"},
			},
		},
	},
	{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        toolExpiredItems,
			Description: "List the user's products that have already expired.",
			Parameters:  noParams,
		},
	},
	{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        toolRemoveItem,
			Description: "Remove the user's products with the given name.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"item_name": {
						Type:        jsonschema.String,
						Description: "Exact product name",
					},
				},
				Required: []string{"item_name"},
			},
		},
	},
}

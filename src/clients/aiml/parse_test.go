package aiml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fittrack/src/clients/aiml"
	"fittrack/src/schemas"
)

func TestParseIngredients(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		expected []schemas.Ingredient
		raw      bool
	}{
		{
			name:  "json object",
			reply: `{"ingredients":[{"name":"Rice","quantity":"1 cup"},{"name":"Egg","quantity":"2"}]}`,
			expected: []schemas.Ingredient{
				{Name: "Rice", Quantity: "1 cup"},
				{Name: "Egg", Quantity: "2"},
			},
		},
		{
			name:  "fenced json with prose",
			reply: "Sure! Here you go:\n```json\n{\"ingredients\":[{\"ingredient\":\"Tomato\",\"amount\":3}]}\n```\nEnjoy.",
			expected: []schemas.Ingredient{
				{Name: "Tomato", Quantity: "3"},
			},
		},
		{
			name:  "bare array of strings",
			reply: `["salmon", "asparagus", ""]`,
			expected: []schemas.Ingredient{
				{Name: "salmon"},
				{Name: "asparagus"},
			},
		},
		{
			name:  "free text list",
			reply: "Ingredients:\n- Pasta: 200 g\n2. Basil - a handful\n* Olive oil\n\n",
			expected: []schemas.Ingredient{
				{Name: "Pasta", Quantity: "200 g"},
				{Name: "Basil", Quantity: "a handful"},
				{Name: "Olive oil"},
			},
			raw: true,
		},
		{
			name:  "markup is sanitized",
			reply: `{"ingredients":["<b>Mac & cheese</b>"]}`,
			expected: []schemas.Ingredient{
				{Name: "bMac &amp; cheese/b"},
			},
		},
		{
			name:     "plain sentence falls back to text",
			reply:    "Looks like a green salad",
			expected: []schemas.Ingredient{{Name: "Looks like a green salad"}},
			raw:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := aiml.ParseIngredients(tt.reply)
			assert.Equal(t, tt.expected, got.Ingredients)
			if tt.raw {
				assert.Equal(t, tt.reply, got.Raw)
			} else {
				assert.Empty(t, got.Raw)
			}
		})
	}
}

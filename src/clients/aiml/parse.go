package aiml

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"fittrack/src/schemas"
	"fittrack/src/utils"
)

var (
	codeFence    = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	bulletPrefix = regexp.MustCompile(`^\s*(?:[-*•]+|\d+[.)])\s*`)
)

// ParseIngredients reads the model reply as JSON when it contains any,
// either {"ingredients":[...]} or a bare array of strings or objects, and
// otherwise falls back to one ingredient per line. Raw is set only for the
// free-text fallback.
func ParseIngredients(reply string) *schemas.ImageMealPlanResponse {
	if ingredients, ok := parseJSON(reply); ok {
		return &schemas.ImageMealPlanResponse{Ingredients: ingredients}
	}
	return &schemas.ImageMealPlanResponse{
		Ingredients: parseLines(reply),
		Raw:         reply,
	}
}

func parseJSON(reply string) ([]schemas.Ingredient, bool) {
	candidate := reply
	if m := codeFence.FindStringSubmatch(reply); m != nil {
		candidate = m[1]
	}
	candidate = extractJSON(candidate)
	if candidate == "" || !gjson.Valid(candidate) {
		return nil, false
	}

	doc := gjson.Parse(candidate)
	list := doc
	if doc.IsObject() {
		list = doc.Get("ingredients")
		if !list.Exists() {
			list = doc.Get("items")
		}
	}
	if !list.IsArray() {
		return nil, false
	}

	ingredients := []schemas.Ingredient{}
	list.ForEach(func(_, item gjson.Result) bool {
		var ing schemas.Ingredient
		if item.Type == gjson.String {
			ing.Name = item.String()
		} else {
			ing.Name = firstString(item, "name", "ingredient", "item")
			ing.Quantity = firstString(item, "quantity", "amount", "portion")
		}
		ing.Name = utils.SanitizeString(ing.Name)
		ing.Quantity = utils.SanitizeString(ing.Quantity)
		if ing.Name != "" {
			ingredients = append(ingredients, ing)
		}
		return true
	})
	return ingredients, true
}

// extractJSON returns the span from the first opening bracket to the last
// matching closing one.
func extractJSON(s string) string {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ""
	}
	closing := "}"
	if s[start] == '[' {
		closing = "]"
	}
	end := strings.LastIndex(s, closing)
	if end < start {
		return ""
	}
	return s[start : end+1]
}

func firstString(item gjson.Result, keys ...string) string {
	for _, key := range keys {
		if v := item.Get(key); v.Exists() {
			return v.String()
		}
	}
	return ""
}

func parseLines(reply string) []schemas.Ingredient {
	ingredients := []schemas.Ingredient{}
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}

		var ing schemas.Ingredient
		if name, qty, ok := strings.Cut(line, ":"); ok {
			ing.Name, ing.Quantity = strings.TrimSpace(name), strings.TrimSpace(qty)
		} else if name, qty, ok := strings.Cut(line, " - "); ok {
			ing.Name, ing.Quantity = strings.TrimSpace(name), strings.TrimSpace(qty)
		} else {
			ing.Name = line
		}
		ing.Name = utils.SanitizeString(ing.Name)
		ing.Quantity = utils.SanitizeString(ing.Quantity)
		if ing.Name != "" {
			ingredients = append(ingredients, ing)
		}
	}
	return ingredients
}

package aiml

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"

	"fittrack/src/config"
	"fittrack/src/schemas"
	"fittrack/src/telemetry"
	"fittrack/src/utils"
)

const mealPrompt = `Identify the ingredients visible in this meal photo.
Reply with JSON only, in the form {"ingredients":[{"name":"...","quantity":"..."}]}.`

const maxCompletionTokens = 800

type AIMLServiceClientI interface {
	AnalyzeMealImage(ctx context.Context, image []byte, contentType string) (*schemas.ImageMealPlanResponse, error)
}

// AIMLServiceClient calls an OpenAI-compatible vision model.
type AIMLServiceClient struct {
	client openai.Client
	model  string
}

func NewClient(cfg config.AIMLConfig, opts ...option.RequestOption) *AIMLServiceClient {
	base := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}
	return &AIMLServiceClient{
		client: openai.NewClient(append(base, opts...)...),
		model:  cfg.Model,
	}
}

// AnalyzeMealImage sends the image to the model and parses the ingredient
// list out of its reply.
func (c *AIMLServiceClient) AnalyzeMealImage(ctx context.Context, image []byte, contentType string) (*schemas.ImageMealPlanResponse, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "aiml.AnalyzeMealImage")
	defer span.End()
	span.SetAttributes(attribute.Int("image.bytes", len(image)), attribute.String("model", c.model))

	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(mealPrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
			}),
		},
		MaxTokens: openai.Int(maxCompletionTokens),
	})
	if err != nil {
		return nil, utils.WithDetails(utils.BadGateway("vision model request failed"), err.Error())
	}
	if len(completion.Choices) == 0 {
		return nil, utils.BadGateway("vision model returned no choices")
	}

	return ParseIngredients(strings.TrimSpace(completion.Choices[0].Message.Content)), nil
}

package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/myrjola/fitplan/internal/training"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/sync/errgroup"
)

// Describer writes a short description for an exercise that has none.
type Describer interface {
	Describe(ctx context.Context, e training.Exercise) (string, error)
}

// OpenAIDescriber generates descriptions with the OpenAI chat completions API.
type OpenAIDescriber struct {
	client openai.Client
	model  string
}

// NewOpenAIDescriber creates a describer. Extra request options such as a base URL are passed to the client.
func NewOpenAIDescriber(apiKey, model string, opts ...option.RequestOption) *OpenAIDescriber {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIDescriber{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Describe asks the model for a plain-text technique description.
func (d *OpenAIDescriber) Describe(ctx context.Context, e training.Exercise) (string, error) {
	prompt := fmt.Sprintf(`Describe how to perform the exercise "%s" (%s, targets: %s, equipment: %s).
Write 2-3 plain sentences about setup and technique, focusing on safety. No markdown, no lists.`,
		e.Name, e.Type, strings.Join(e.MuscleGroups, ", "), strings.Join(e.Equipment, ", "))

	chat, err := d.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{ //nolint:exhaustruct // only need to set a few fields.
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a certified strength and conditioning coach."),
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(d.model),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(chat.Choices[0].Message.Content), nil
}

// maxConcurrentDescriptions bounds parallel requests to the describer.
const maxConcurrentDescriptions = 4

// FillDescriptions sets descriptions for exercises that have none. A failed description is logged and the
// exercise keeps its empty description.
func FillDescriptions(
	ctx context.Context,
	logger *slog.Logger,
	describer Describer,
	exercises []training.Exercise,
) []training.Exercise {
	out := make([]training.Exercise, len(exercises))
	copy(out, exercises)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDescriptions)
	for i := range out {
		if out[i].Description != "" {
			continue
		}
		g.Go(func() error {
			desc, err := describer.Describe(gctx, out[i])
			if err != nil {
				logger.LogAttrs(gctx, slog.LevelWarn, "describe exercise",
					slog.String("exercise_id", out[i].ID), slog.Any("error", err))
				return nil
			}
			out[i].Description = desc
			return nil
		})
	}
	_ = g.Wait()
	return out
}

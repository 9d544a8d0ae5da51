package llm

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	roleSystem    = "system"
	roleDeveloper = "developer"
	roleAssistant = "assistant"
)

type chatMessagePart struct {
	Type     string               `json:"type,omitempty"`
	Text     string               `json:"text,omitempty"`
	ImageURL *chatMessageImageURL `json:"image_url,omitempty"`
}

type chatMessageImageURL struct {
	URL string `json:"url,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatCompletionsRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Modalities []string      `json:"modalities,omitempty"`
}

type responsesPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type responsesItem struct {
	Role    string          `json:"role"`
	Content []responsesPart `json:"content"`
}

type responsesRequest struct {
	Model string          `json:"model"`
	Input []responsesItem `json:"input"`
}

// BuildRequest translates the conversation into the upstream request body for
// the given wire format. An empty or all-whitespace system prompt is never
// injected, and turns with no text and no images never produce an entry.
func BuildRequest(f Format, model, systemPrompt string, turns []Turn) (any, error) {
	switch f {
	case FormatChatCompletions:
		return buildChatCompletions(model, systemPrompt, turns), nil
	case FormatResponses:
		return buildResponses(model, systemPrompt, turns), nil
	default:
		return nil, fmt.Errorf("unknown wire format %q", f)
	}
}

func buildChatCompletions(model, systemPrompt string, turns []Turn) chatCompletionsRequest {
	msgs := make([]chatMessage, 0, len(turns)+1)

	if p := strings.TrimSpace(systemPrompt); p != "" {
		msgs = append(msgs, chatMessage{Role: roleSystem, Content: p})
	}

	for _, t := range turns {
		parts := make([]chatMessagePart, 0, len(t.Images)+1)
		if t.Text != "" {
			parts = append(parts, chatMessagePart{Type: "text", Text: t.Text})
		}
		for _, img := range t.Images {
			parts = append(parts, chatMessagePart{
				Type:     "image_url",
				ImageURL: &chatMessageImageURL{URL: img},
			})
		}
		if len(parts) == 0 {
			continue
		}
		msgs = append(msgs, chatMessage{Role: t.Role, Content: parts})
	}

	req := chatCompletionsRequest{Model: model, Messages: msgs}
	if ImageCapable(model) {
		req.Modalities = []string{"image", "text"}
	}
	return req
}

func buildResponses(model, systemPrompt string, turns []Turn) responsesRequest {
	input := make([]responsesItem, 0, len(turns)+1)

	if p := strings.TrimSpace(systemPrompt); p != "" {
		input = append(input, responsesItem{
			Role:    roleDeveloper,
			Content: []responsesPart{{Type: "input_text", Text: p}},
		})
	}

	for _, t := range turns {
		var parts []responsesPart
		if t.Role == roleAssistant {
			// Assistant history carries text only; generated images are not
			// replayed upstream.
			if t.Text != "" {
				parts = append(parts, responsesPart{Type: "output_text", Text: t.Text})
			}
		} else {
			if t.Text != "" {
				parts = append(parts, responsesPart{Type: "input_text", Text: t.Text})
			}
			parts = append(parts, lo.Map(t.Images, func(img string, _ int) responsesPart {
				return responsesPart{Type: "input_image", ImageURL: img}
			})...)
		}
		if len(parts) == 0 {
			continue
		}
		input = append(input, responsesItem{Role: t.Role, Content: parts})
	}

	return responsesRequest{Model: model, Input: input}
}

package llm

import (
	"fmt"
	"strings"
)

// Format is the upstream wire format. It is resolved once per request and
// carried through request building, path selection and response parsing.
type Format string

const (
	FormatChatCompletions Format = "chat_completions"
	FormatResponses       Format = "responses"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "chat_completions", "chat-completions", "chat/completions":
		return FormatChatCompletions, nil
	case "responses":
		return FormatResponses, nil
	default:
		return "", fmt.Errorf("unknown wire format %q", s)
	}
}

func (f Format) Path() string {
	if f == FormatResponses {
		return "/v1/responses"
	}
	return "/v1/chat/completions"
}

// ImageCapable reports whether the model is expected to emit images, which
// switches on multi-modal output in the request.
func ImageCapable(model string) bool {
	return strings.Contains(strings.ToLower(model), "image")
}

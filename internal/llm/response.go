package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

type upstreamErrorBody struct {
	Message string `json:"message"`
}

type responsesResult struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Result string `json:"result"`
	} `json:"output"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *upstreamErrorBody `json:"error"`
}

type chatCompletionsResult struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Images  []struct {
				B64JSON  string `json:"b64_json"`
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"images"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *upstreamErrorBody `json:"error"`
}

const pngDataURLPrefix = "data:image/png;base64,"

// Some chat-completions upstreams report a failed call whose error message
// embeds the (escaped, possibly truncated) partial result. These patterns pull
// the base64 image payloads and the partial content text back out so the
// generation is not discarded. Pinned by tests; if the upstream fixes the
// inconsistency the recovery path simply stops matching.
var (
	embeddedB64Re     = regexp.MustCompile(`\\?"b64_json\\?"\s*:\s*\\?"([A-Za-z0-9+/=]+)`)
	embeddedContentRe = regexp.MustCompile(`\\?"content\\?"\s*:\s*\\?"((?:[^"\\]|\\[^"])*)`)
)

// ParseResponse turns an upstream body into a Reply. Non-2xx chat-completions
// bodies still go through payload recovery before being surfaced as an
// UpstreamError.
func ParseResponse(f Format, status int, body []byte) (*Reply, error) {
	if f == FormatResponses {
		return parseResponses(status, body)
	}
	return parseChatCompletions(status, body)
}

func parseResponses(status int, body []byte) (*Reply, error) {
	var decoded responsesResult
	if err := json.Unmarshal(body, &decoded); err != nil || status < 200 || status >= 300 {
		return nil, upstreamErrorFrom(status, decoded.Error, body)
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return nil, upstreamErrorFrom(status, decoded.Error, body)
	}

	reply := &Reply{
		Usage: Usage{
			InputTokens:  decoded.Usage.InputTokens,
			OutputTokens: decoded.Usage.OutputTokens,
		},
	}

	var text strings.Builder
	for _, item := range decoded.Output {
		switch item.Type {
		case "message":
			for _, part := range item.Content {
				if part.Type == "output_text" {
					text.WriteString(part.Text)
				}
			}
		case "image_generation_call":
			if item.Result != "" {
				reply.Images = append(reply.Images, pngDataURLPrefix+item.Result)
			}
		}
	}
	reply.Text = text.String()
	return reply, nil
}

func parseChatCompletions(status int, body []byte) (*Reply, error) {
	var decoded chatCompletionsResult
	decodeErr := json.Unmarshal(body, &decoded)

	errored := status < 200 || status >= 300 ||
		(decoded.Error != nil && decoded.Error.Message != "")

	if decodeErr == nil && !errored && len(decoded.Choices) > 0 {
		msg := decoded.Choices[0].Message
		reply := &Reply{
			Text: msg.Content,
			Usage: Usage{
				InputTokens:  decoded.Usage.PromptTokens,
				OutputTokens: decoded.Usage.CompletionTokens,
			},
		}
		for _, img := range msg.Images {
			switch {
			case img.B64JSON != "":
				reply.Images = append(reply.Images, pngDataURLPrefix+img.B64JSON)
			case img.ImageURL.URL != "":
				reply.Images = append(reply.Images, img.ImageURL.URL)
			}
		}
		return reply, nil
	}

	// Error path: the message may embed partial results.
	errMsg := string(body)
	if decoded.Error != nil && decoded.Error.Message != "" {
		errMsg = decoded.Error.Message
	}
	if reply, ok := recoverEmbeddedPayload(errMsg, decoded); ok {
		return reply, nil
	}
	return nil, &UpstreamError{Status: status, Message: errMsg}
}

func recoverEmbeddedPayload(errMsg string, decoded chatCompletionsResult) (*Reply, bool) {
	reply := &Reply{
		Usage: Usage{
			InputTokens:  decoded.Usage.PromptTokens,
			OutputTokens: decoded.Usage.CompletionTokens,
		},
	}

	for _, m := range embeddedB64Re.FindAllStringSubmatch(errMsg, -1) {
		reply.Images = append(reply.Images, pngDataURLPrefix+m[1])
	}
	if m := embeddedContentRe.FindStringSubmatch(errMsg); m != nil {
		reply.Text = unescapeEmbedded(m[1])
	}

	if len(reply.Images) == 0 && reply.Text == "" {
		return nil, false
	}
	return reply, true
}

func unescapeEmbedded(s string) string {
	r := strings.NewReplacer(
		`\\n`, "\n", `\n`, "\n",
		`\\t`, "\t", `\t`, "\t",
		`\\"`, `"`, `\"`, `"`,
		`\\\\`, `\`, `\\`, `\`,
	)
	return r.Replace(s)
}

func upstreamErrorFrom(status int, errBody *upstreamErrorBody, body []byte) *UpstreamError {
	msg := string(body)
	if errBody != nil && errBody.Message != "" {
		msg = errBody.Message
	}
	return &UpstreamError{Status: status, Message: msg}
}

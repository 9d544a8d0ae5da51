package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseResponses_TextAndImages(t *testing.T) {
	body := []byte(`{
		"output": [
			{"type": "message", "content": [
				{"type": "output_text", "text": "Hello "},
				{"type": "output_text", "text": "world"}
			]},
			{"type": "image_generation_call", "result": "QUJD"}
		],
		"usage": {"input_tokens": 10, "output_tokens": 5}
	}`)

	reply, err := ParseResponse(FormatResponses, 200, body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if reply.Text != "Hello world" {
		t.Fatalf("unexpected text: %q", reply.Text)
	}
	if len(reply.Images) != 1 || reply.Images[0] != "data:image/png;base64,QUJD" {
		t.Fatalf("unexpected images: %v", reply.Images)
	}
	if reply.Usage.InputTokens != 10 || reply.Usage.OutputTokens != 5 {
		t.Fatalf("unexpected usage: %+v", reply.Usage)
	}
}

func TestParseResponses_ErrorStatus(t *testing.T) {
	body := []byte(`{"error": {"message": "boom"}}`)

	_, err := ParseResponse(FormatResponses, 500, body)
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != 500 || ue.Message != "boom" {
		t.Fatalf("unexpected upstream error: %+v", ue)
	}
}

func TestParseChatCompletions_Success(t *testing.T) {
	body := []byte(`{
		"choices": [{"message": {
			"content": "hi there",
			"images": [{"b64_json": "QUJD"}, {"image_url": {"url": "data:image/png;base64,REVG"}}]
		}}],
		"usage": {"prompt_tokens": 7, "completion_tokens": 3}
	}`)

	reply, err := ParseResponse(FormatChatCompletions, 200, body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if reply.Text != "hi there" {
		t.Fatalf("unexpected text: %q", reply.Text)
	}
	if len(reply.Images) != 2 {
		t.Fatalf("expected 2 images, got %v", reply.Images)
	}
	if reply.Images[0] != "data:image/png;base64,QUJD" || reply.Images[1] != "data:image/png;base64,REVG" {
		t.Fatalf("unexpected images: %v", reply.Images)
	}
	if reply.Usage.InputTokens != 7 || reply.Usage.OutputTokens != 3 {
		t.Fatalf("unexpected usage: %+v", reply.Usage)
	}
}

// Pins the observed upstream bug shape: a failed chat-completions call whose
// error message embeds the partial result as stringified JSON. The recovery
// path must pull out the image and the partial text instead of surfacing a
// bare error.
func TestParseChatCompletions_ErrorEmbedsPartialResult(t *testing.T) {
	inner := `RESOURCE_EXHAUSTED: {"choices": [{"message": {"content": "partial answer", "images": [{"b64_json": "QUJDREVG"}]}}]}`
	body, err := json.Marshal(map[string]any{
		"error": map[string]any{"message": inner},
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	reply, err := ParseResponse(FormatChatCompletions, 400, body)
	if err != nil {
		t.Fatalf("expected recovery, got error: %v", err)
	}
	if reply.Text != "partial answer" {
		t.Fatalf("unexpected recovered text: %q", reply.Text)
	}
	if len(reply.Images) != 1 || reply.Images[0] != "data:image/png;base64,QUJDREVG" {
		t.Fatalf("unexpected recovered images: %v", reply.Images)
	}
}

func TestParseChatCompletions_ErrorEmbedsEscapedTruncatedPayload(t *testing.T) {
	// Not valid JSON at all: escaped fields inside free text, cut off mid-way.
	body := []byte(`Provider returned error: {\"message\":{\"content\":\"cut off mid sen`)

	reply, err := ParseResponse(FormatChatCompletions, 502, body)
	if err != nil {
		t.Fatalf("expected recovery, got error: %v", err)
	}
	if reply.Text != "cut off mid sen" {
		t.Fatalf("unexpected recovered text: %q", reply.Text)
	}
}

func TestParseChatCompletions_ErrorWithoutPayload(t *testing.T) {
	body := []byte(`{"error": {"message": "rate limited"}}`)

	_, err := ParseResponse(FormatChatCompletions, 429, body)
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != 429 || ue.Message != "rate limited" {
		t.Fatalf("unexpected upstream error: %+v", ue)
	}
}

func TestParseChatCompletions_EmptyChoices(t *testing.T) {
	_, err := ParseResponse(FormatChatCompletions, 200, []byte(`{"choices": []}`))
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError for empty choices, got %v", err)
	}
}

package llm

import (
	"testing"
)

func TestBuildChatCompletions_SystemPromptLeads(t *testing.T) {
	req, err := BuildRequest(FormatChatCompletions, "gpt-4o", "be brief", []Turn{
		{Role: "user", Text: "hi"},
	})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}

	cc := req.(chatCompletionsRequest)
	if len(cc.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(cc.Messages))
	}
	if cc.Messages[0].Role != "system" {
		t.Fatalf("expected leading system message, got role %q", cc.Messages[0].Role)
	}
	if content, okk := cc.Messages[0].Content.(string); !okk || content != "be brief" {
		t.Fatalf("expected plain string system content, got %#v", cc.Messages[0].Content)
	}
}

func TestBuildChatCompletions_WhitespacePromptOmitted(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\n\t "} {
		req, err := BuildRequest(FormatChatCompletions, "gpt-4o", prompt, []Turn{
			{Role: "user", Text: "hi"},
		})
		if err != nil {
			t.Fatalf("build request: %v", err)
		}
		cc := req.(chatCompletionsRequest)
		if len(cc.Messages) != 1 {
			t.Fatalf("prompt %q: expected 1 message, got %d", prompt, len(cc.Messages))
		}
		if cc.Messages[0].Role != "user" {
			t.Fatalf("prompt %q: unexpected leading role %q", prompt, cc.Messages[0].Role)
		}
	}
}

func TestBuildChatCompletions_EmptyTurnOmitted(t *testing.T) {
	req, err := BuildRequest(FormatChatCompletions, "gpt-4o", "", []Turn{
		{Role: "user", Text: "first"},
		{Role: "assistant"},
		{Role: "user", Text: "second"},
	})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	cc := req.(chatCompletionsRequest)
	if len(cc.Messages) != 2 {
		t.Fatalf("expected empty turn to be dropped, got %d messages", len(cc.Messages))
	}
}

func TestBuildChatCompletions_ImageParts(t *testing.T) {
	req, err := BuildRequest(FormatChatCompletions, "gpt-4o", "", []Turn{
		{Role: "user", Text: "what is this", Images: []string{"data:image/png;base64,QUJD"}},
	})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	cc := req.(chatCompletionsRequest)

	parts := cc.Messages[0].Content.([]chatMessagePart)
	if len(parts) != 2 {
		t.Fatalf("expected text + image parts, got %d", len(parts))
	}
	if parts[0].Type != "text" || parts[0].Text != "what is this" {
		t.Fatalf("unexpected text part: %+v", parts[0])
	}
	if parts[1].Type != "image_url" || parts[1].ImageURL == nil || parts[1].ImageURL.URL != "data:image/png;base64,QUJD" {
		t.Fatalf("unexpected image part: %+v", parts[1])
	}
}

func TestBuildChatCompletions_ImageModelRequestsModalities(t *testing.T) {
	req, err := BuildRequest(FormatChatCompletions, "gemini-2.5-flash-image", "", []Turn{
		{Role: "user", Text: "draw a cat"},
	})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	cc := req.(chatCompletionsRequest)
	if len(cc.Modalities) != 2 {
		t.Fatalf("expected modalities for image model, got %v", cc.Modalities)
	}

	req, err = BuildRequest(FormatChatCompletions, "gpt-4o", "", []Turn{{Role: "user", Text: "hi"}})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if mods := req.(chatCompletionsRequest).Modalities; mods != nil {
		t.Fatalf("expected no modalities for text model, got %v", mods)
	}
}

func TestBuildResponses_DeveloperPromptLeads(t *testing.T) {
	req, err := BuildRequest(FormatResponses, "gpt-5", "be brief", []Turn{
		{Role: "user", Text: "hi"},
	})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}

	rr := req.(responsesRequest)
	if len(rr.Input) != 2 {
		t.Fatalf("expected 2 input items, got %d", len(rr.Input))
	}
	dev := rr.Input[0]
	if dev.Role != "developer" {
		t.Fatalf("expected developer item first, got %q", dev.Role)
	}
	if len(dev.Content) != 1 || dev.Content[0].Type != "input_text" || dev.Content[0].Text != "be brief" {
		t.Fatalf("unexpected developer content: %+v", dev.Content)
	}
}

func TestBuildResponses_WhitespacePromptOmitted(t *testing.T) {
	req, err := BuildRequest(FormatResponses, "gpt-5", "  \n ", []Turn{
		{Role: "user", Text: "hi"},
	})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	rr := req.(responsesRequest)
	if len(rr.Input) != 1 {
		t.Fatalf("expected 1 input item, got %d", len(rr.Input))
	}
}

func TestBuildResponses_PartTypesByRole(t *testing.T) {
	req, err := BuildRequest(FormatResponses, "gpt-5", "", []Turn{
		{Role: "user", Text: "look", Images: []string{"data:image/png;base64,QUJD"}},
		{Role: "assistant", Text: "a cat", Images: []string{"data:image/png;base64,REVG"}},
	})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	rr := req.(responsesRequest)

	user := rr.Input[0]
	if len(user.Content) != 2 || user.Content[0].Type != "input_text" || user.Content[1].Type != "input_image" {
		t.Fatalf("unexpected user parts: %+v", user.Content)
	}
	if user.Content[1].ImageURL != "data:image/png;base64,QUJD" {
		t.Fatalf("unexpected user image url: %q", user.Content[1].ImageURL)
	}

	assistant := rr.Input[1]
	if len(assistant.Content) != 1 || assistant.Content[0].Type != "output_text" {
		t.Fatalf("expected assistant output_text only, got %+v", assistant.Content)
	}
}

func TestBuildResponses_EmptyTurnOmitted(t *testing.T) {
	req, err := BuildRequest(FormatResponses, "gpt-5", "", []Turn{
		{Role: "user", Text: "hi"},
		{Role: "assistant", Images: []string{"data:image/png;base64,QUJD"}}, // images only: no output parts
	})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	rr := req.(responsesRequest)
	if len(rr.Input) != 1 {
		t.Fatalf("expected assistant turn without text to be dropped, got %d items", len(rr.Input))
	}
}

func TestBuildRequest_UnknownFormat(t *testing.T) {
	if _, err := BuildRequest(Format("grpc"), "m", "", nil); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

package chat

import (
	"context"
	"errors"

	"github.com/kokamido/cursed-vibecode/internal/llm"
	"github.com/samber/lo"
)

var (
	ErrEmptyConversation = errors.New("conversation has no messages")
	ErrNoAssistantTurn   = errors.New("conversation does not end with an assistant turn")
)

// Upstream is the completion surface the service needs from the llm client.
type Upstream interface {
	Complete(ctx context.Context, baseURL, apiKey string, f llm.Format, reqBody any) (*llm.Reply, error)
}

type Service struct {
	repo   *Repo
	client Upstream
}

func NewService(repo *Repo, client Upstream) *Service {
	return &Service{repo: repo, client: client}
}

// Send translates the stored conversation into the endpoint's wire format,
// calls the upstream and persists the assistant reply with its token counts
// and computed cost. Cost is computed here once; clients only display it.
func (s *Service) Send(ctx context.Context, conversationID, endpointID uint64, model string) (*Message, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.repo.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, ErrEmptyConversation
	}
	return s.complete(ctx, conv, msgs, endpointID, model)
}

// Retry re-issues the conversation without its trailing assistant turn. The
// old assistant row is deleted only after the replacement succeeded, so a
// failed retry leaves the conversation untouched.
func (s *Service) Retry(ctx context.Context, conversationID, endpointID uint64, model string) (*Message, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.repo.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, ErrEmptyConversation
	}
	last := msgs[len(msgs)-1]
	if last.Role != RoleAssistant {
		return nil, ErrNoAssistantTurn
	}

	replacement, err := s.complete(ctx, conv, msgs[:len(msgs)-1], endpointID, model)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteMessage(ctx, last.ID); err != nil {
		return nil, err
	}
	return replacement, nil
}

func (s *Service) complete(ctx context.Context, conv *Conversation, msgs []Message, endpointID uint64, model string) (*Message, error) {
	if len(msgs) == 0 {
		return nil, ErrEmptyConversation
	}

	ep, err := s.repo.GetEndpoint(ctx, endpointID)
	if err != nil {
		return nil, err
	}
	format, err := llm.ParseFormat(ep.APIFormat)
	if err != nil {
		return nil, err
	}

	turns := lo.Map(msgs, func(m Message, _ int) llm.Turn {
		return llm.Turn{Role: m.Role, Text: m.Text, Images: m.ImageURLs()}
	})

	req, err := llm.BuildRequest(format, model, conv.SystemPrompt, turns)
	if err != nil {
		return nil, err
	}

	reply, err := s.client.Complete(ctx, ep.BaseURL, ep.APIKey, format, req)
	if err != nil {
		return nil, err
	}

	cost := costOf(reply.Usage, ep)
	assistant := &Message{
		ConversationID: conv.ID,
		Role:           RoleAssistant,
		Text:           reply.Text,
		InputTokens:    reply.Usage.InputTokens,
		OutputTokens:   reply.Usage.OutputTokens,
		Cost:           &cost,
	}
	if err := s.repo.AppendMessage(ctx, assistant, reply.Images); err != nil {
		return nil, err
	}
	return assistant, nil
}

func costOf(u llm.Usage, ep *Endpoint) float64 {
	return float64(u.InputTokens)/1e6*ep.CostPerMillionInput +
		float64(u.OutputTokens)/1e6*ep.CostPerMillionOutput
}

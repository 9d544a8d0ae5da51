package chat

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// titleRuneBudget is the auto-title cut; the original UI shows 50 characters.
const titleRuneBudget = 50

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ListConversations(ctx context.Context) ([]Conversation, error) {
	var convs []Conversation
	if err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Find(&convs).Error; err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *Repo) CreateConversation(ctx context.Context) (*Conversation, error) {
	conv := &Conversation{Title: DefaultTitle}
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

func (r *Repo) GetConversation(ctx context.Context, id uint64) (*Conversation, error) {
	var conv Conversation
	if err := r.db.WithContext(ctx).First(&conv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *Repo) RenameConversation(ctx context.Context, id uint64, title string) error {
	return r.db.WithContext(ctx).Model(&Conversation{}).
		Where("id = ?", id).
		Update("title", title).Error
}

func (r *Repo) SetConversationSystemPrompt(ctx context.Context, id uint64, text string) error {
	return r.db.WithContext(ctx).Model(&Conversation{}).
		Where("id = ?", id).
		Update("system_prompt", text).Error
}

// DeleteConversation removes the conversation and everything it owns.
// Deleting an id that no longer exists is a no-op.
func (r *Repo) DeleteConversation(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		msgIDs := tx.Model(&Message{}).Select("id").Where("conversation_id = ?", id)
		if err := tx.Where("message_id IN (?)", msgIDs).Delete(&MessageImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", id).Delete(&Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Conversation{}, "id = ?", id).Error
	})
}

// ListMessages returns the conversation's messages in stable SortOrder with
// images preloaded in insertion order.
func (r *Repo) ListMessages(ctx context.Context, conversationID uint64) ([]Message, error) {
	var msgs []Message
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("conversation_id = ?", conversationID).
		Order("sort_order ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// AppendMessage inserts the message and its images as one unit, assigns the
// next SortOrder, auto-titles the conversation from its first user message
// and touches the conversation's updated_at.
func (r *Repo) AppendMessage(ctx context.Context, m *Message, images []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&Message{}).
			Where("conversation_id = ?", m.ConversationID).
			Select("COALESCE(MAX(sort_order), -1) + 1").
			Scan(&next).Error; err != nil {
			return err
		}
		m.SortOrder = next
		m.Images = lo.Map(images, func(url string, _ int) MessageImage {
			return MessageImage{DataURL: url}
		})

		if err := tx.Create(m).Error; err != nil {
			return err
		}

		if m.Role == RoleUser && m.SortOrder == 0 {
			if err := autoTitle(tx, m.ConversationID, m.Text); err != nil {
				return err
			}
		}

		return tx.Model(&Conversation{}).
			Where("id = ?", m.ConversationID).
			Update("updated_at", time.Now()).Error
	})
}

func autoTitle(tx *gorm.DB, conversationID uint64, text string) error {
	var conv Conversation
	if err := tx.First(&conv, "id = ?", conversationID).Error; err != nil {
		return err
	}
	trimmed := strings.TrimSpace(text)
	if conv.Title != DefaultTitle || trimmed == "" {
		return nil
	}
	return tx.Model(&Conversation{}).
		Where("id = ?", conversationID).
		Update("title", truncateTitle(trimmed)).Error
}

func truncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= titleRuneBudget {
		return s
	}
	return string(runes[:titleRuneBudget])
}

// DeleteMessage removes one message and its images; unknown ids are a no-op.
func (r *Repo) DeleteMessage(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&MessageImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Message{}, "id = ?", id).Error
	})
}

func (r *Repo) ListSystemPrompts(ctx context.Context) ([]SystemPrompt, error) {
	var prompts []SystemPrompt
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}

func (r *Repo) CreateSystemPrompt(ctx context.Context, p *SystemPrompt) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repo) DeleteSystemPrompt(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&SystemPrompt{}, "id = ?", id).Error
}

func (r *Repo) ListEndpoints(ctx context.Context) ([]Endpoint, error) {
	var eps []Endpoint
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&eps).Error; err != nil {
		return nil, err
	}
	return eps, nil
}

func (r *Repo) GetEndpoint(ctx context.Context, id uint64) (*Endpoint, error) {
	var ep Endpoint
	if err := r.db.WithContext(ctx).First(&ep, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ep, nil
}

func (r *Repo) CreateEndpoint(ctx context.Context, ep *Endpoint) error {
	return r.db.WithContext(ctx).Create(ep).Error
}

func (r *Repo) DeleteEndpoint(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&Endpoint{}, "id = ?", id).Error
}

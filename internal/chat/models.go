package chat

import (
	"time"

	"github.com/samber/lo"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const DefaultTitle = "New Chat"

type Conversation struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	SystemPrompt string    `gorm:"type:text;not null" json:"system_prompt"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Conversation) TableName() string { return "conversations" }

type Message struct {
	ID             uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint64         `gorm:"not null;index:idx_messages_conv_sort,priority:1" json:"conversation_id"`
	Role           string         `gorm:"type:varchar(16);not null" json:"role"`
	Text           string         `gorm:"type:text;not null" json:"text"`
	SortOrder      int            `gorm:"not null;index:idx_messages_conv_sort,priority:2" json:"sort_order"`
	InputTokens    int            `gorm:"not null" json:"input_tokens"`
	OutputTokens   int            `gorm:"not null" json:"output_tokens"`
	Cost           *float64       `json:"cost"`
	CreatedAt      time.Time      `json:"created_at"`
	Images         []MessageImage `gorm:"foreignKey:MessageID" json:"images"`
}

func (Message) TableName() string { return "messages" }

// ImageURLs flattens the attached images to their data URLs.
func (m Message) ImageURLs() []string {
	return lo.Map(m.Images, func(img MessageImage, _ int) string { return img.DataURL })
}

type MessageImage struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	MessageID uint64 `gorm:"not null;index" json:"-"`
	DataURL   string `gorm:"type:text;not null" json:"data_url"`
}

func (MessageImage) TableName() string { return "message_images" }

type SystemPrompt struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func (SystemPrompt) TableName() string { return "system_prompts" }

type Endpoint struct {
	ID                   uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                 string    `gorm:"type:varchar(255);not null" json:"name"`
	BaseURL              string    `gorm:"type:varchar(1024);not null" json:"base_url"`
	APIKey               string    `gorm:"type:text;not null" json:"api_key"`
	CostPerMillionInput  float64   `gorm:"not null" json:"cost_per_million_input"`
	CostPerMillionOutput float64   `gorm:"not null" json:"cost_per_million_output"`
	APIFormat            string    `gorm:"type:varchar(32);not null" json:"api_format"`
	CreatedAt            time.Time `json:"created_at"`
}

func (Endpoint) TableName() string { return "endpoints" }

// Models lists every persisted entity for AutoMigrate.
func Models() []any {
	return []any{
		&Conversation{},
		&Message{},
		&MessageImage{},
		&SystemPrompt{},
		&Endpoint{},
	}
}

package chat

import "time"

const (
	DefaultModel    = "GPT-5.2"
	DefaultDuration = "0 mins"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Input modality of a user message. Assistant messages are always text.
const (
	MessageTypeText  = "text"
	MessageTypeAudio = "audio"
	MessageTypeImage = "image"
)

type Session struct {
	ID             string    `gorm:"primaryKey;type:varchar(26)" json:"id"`
	Title          string    `gorm:"type:varchar(255);not null" json:"title"`
	Date           time.Time `json:"date"`
	Duration       string    `gorm:"type:varchar(32);not null" json:"duration"`
	QuestionsAsked int       `gorm:"not null;default:0" json:"questionsAsked"`
	Model          string    `gorm:"type:varchar(64);not null" json:"model"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Session) TableName() string { return "sessions" }

type Message struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SessionID   string    `gorm:"type:varchar(26);not null;index:idx_messages_session_ts,priority:1" json:"sessionId"`
	Type        string    `gorm:"type:varchar(16);not null" json:"type"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Timestamp   time.Time `gorm:"not null;index:idx_messages_session_ts,priority:2" json:"timestamp"`
	MessageType string    `gorm:"type:varchar(16);not null;default:text" json:"messageType"`
	AudioURL    *string   `gorm:"type:text" json:"audioUrl"`
	ImageURL    *string   `gorm:"type:text" json:"imageUrl"`
}

func (Message) TableName() string { return "messages" }

type InputHistory struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SessionID string    `gorm:"type:varchar(26);not null;index:idx_input_history_session_ts,priority:1" json:"sessionId"`
	Input     string    `gorm:"type:text;not null" json:"input"`
	Timestamp time.Time `gorm:"not null;index:idx_input_history_session_ts,priority:2;index" json:"timestamp"`
}

func (InputHistory) TableName() string { return "input_history" }

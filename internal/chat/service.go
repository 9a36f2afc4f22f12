package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/prepwise/interview-coach/internal/ai"
	"github.com/prepwise/interview-coach/internal/logger"
)

// ExchangePublisher receives a notification after each completed exchange.
// Publishing is best-effort and never affects the caller's response.
type ExchangePublisher interface {
	PublishExchange(ctx context.Context, sessionID, messageID string) error
}

type Service struct {
	repo         *Repo
	registry     *ai.Registry
	providerName string
	timeout      time.Duration
	events       ExchangePublisher
}

func NewService(repo *Repo, registry *ai.Registry, providerName string, timeoutSecs int, events ExchangePublisher) *Service {
	if timeoutSecs <= 0 {
		timeoutSecs = 60
	}
	return &Service{
		repo:         repo,
		registry:     registry,
		providerName: providerName,
		timeout:      time.Duration(timeoutSecs) * time.Second,
		events:       events,
	}
}

// SendMessage runs one exchange: persist the user turn, call the provider,
// persist the assistant turn, bump the session counter. If the provider call
// fails the user message stays durable and the caller gets one uniform error.
func (s *Service) SendMessage(ctx context.Context, sessionID, text, model, messageType, imageData, audioData string) (*Message, error) {
	if messageType == "" {
		messageType = MessageTypeText
	}

	userMsg := &Message{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Type:        RoleUser,
		Content:     text,
		Timestamp:   time.Now().UTC(),
		MessageType: messageType,
	}
	if imageData != "" {
		userMsg.ImageURL = &imageData
	}
	if audioData != "" {
		userMsg.AudioURL = &audioData
	}
	if err := s.repo.InsertMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	provider, err := s.registry.Get(ctx, s.providerName, model)
	if err != nil {
		return nil, &ai.GenerationError{Err: err}
	}

	// The provider call is the only operation with external latency; bound it.
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := provider.GenerateReply(cctx, ai.Request{
		SessionID: sessionID,
		Text:      text,
		ImageData: imageData,
		AudioData: audioData,
		Model:     model,
	})
	if err != nil {
		var genErr *ai.GenerationError
		if !errors.As(err, &genErr) {
			err = &ai.GenerationError{Err: err}
		}
		return nil, err
	}

	assistantMsg := &Message{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Type:        RoleAssistant,
		Content:     reply,
		Timestamp:   time.Now().UTC(),
		MessageType: MessageTypeText,
	}
	if err := s.repo.InsertMessage(ctx, assistantMsg); err != nil {
		return nil, err
	}

	if err := s.repo.IncrementQuestionsAsked(ctx, sessionID); err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishExchange(ctx, sessionID, assistantMsg.ID); err != nil {
			logger.Log.WithError(err).WithField("session_id", sessionID).
				Warn("failed to publish exchange event")
		}
	}

	return assistantMsg, nil
}

func (s *Service) GetMessages(ctx context.Context, sessionID string) ([]Message, error) {
	return s.repo.ListSessionMessages(ctx, sessionID)
}

func (s *Service) DeleteMessages(ctx context.Context, sessionID string) (int64, error) {
	return s.repo.DeleteSessionMessages(ctx, sessionID)
}

package chat

import (
	"context"
	"time"

	"github.com/prepwise/interview-coach/internal/common"
)

type SessionService struct {
	repo *Repo
}

func NewSessionService(repo *Repo) *SessionService {
	return &SessionService{repo: repo}
}

func (s *SessionService) Create(ctx context.Context, title, model string) (*Session, error) {
	if model == "" {
		model = DefaultModel
	}

	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &Session{
		ID:             id,
		Title:          title,
		Date:           now,
		Duration:       DefaultDuration,
		QuestionsAsked: 0,
		Model:          model,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) List(ctx context.Context) ([]Session, error) {
	return s.repo.ListSessions(ctx)
}

func (s *SessionService) Get(ctx context.Context, id string) (*Session, error) {
	return s.repo.GetSession(ctx, id)
}

func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}

func (s *SessionService) UpdateStats(ctx context.Context, id string, questionsAsked int, duration string) error {
	return s.repo.UpdateSessionStats(ctx, id, questionsAsked, duration)
}

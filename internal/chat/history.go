package chat

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prepwise/interview-coach/internal/logger"
)

// RecentInputLimit caps the global recent-inputs listing.
const RecentInputLimit = 100

// RecentInputCache mirrors the global recent-input list. The database stays
// authoritative; a nil cache disables the fast path.
type RecentInputCache interface {
	PushInput(ctx context.Context, input string) error
	RecentInputs(ctx context.Context, limit int64) ([]string, error)
}

type HistoryService struct {
	repo  *Repo
	cache RecentInputCache
}

func NewHistoryService(repo *Repo, cache RecentInputCache) *HistoryService {
	return &HistoryService{repo: repo, cache: cache}
}

func (s *HistoryService) Record(ctx context.Context, sessionID, input string) error {
	entry := &InputHistory{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Input:     input,
		Timestamp: time.Now().UTC(),
	}
	if err := s.repo.InsertInput(ctx, entry); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.PushInput(ctx, input); err != nil {
			logger.Log.WithError(err).Debug("recent-input cache push failed")
		}
	}
	return nil
}

// ListRecent returns at most RecentInputLimit raw inputs, most recent first.
// A warm cache answers directly; otherwise the database does.
func (s *HistoryService) ListRecent(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if inputs, err := s.cache.RecentInputs(ctx, RecentInputLimit); err == nil && len(inputs) > 0 {
			return inputs, nil
		}
	}
	return s.repo.ListRecentInputs(ctx, RecentInputLimit)
}

func (s *HistoryService) ListForSession(ctx context.Context, sessionID string) ([]InputHistory, error) {
	return s.repo.ListSessionInputs(ctx, sessionID)
}

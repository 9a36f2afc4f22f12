package chat

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CreateSession(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// ListSessions returns every session, newest first.
func (r *Repo) ListSessions(ctx context.Context) ([]Session, error) {
	sessions := make([]Session, 0)
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *Repo) GetSession(ctx context.Context, id string) (*Session, error) {
	var s Session
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// DeleteSession removes the session together with its messages and input
// history in one transaction, so the cascade cannot partially fail.
func (r *Repo) DeleteSession(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&Session{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSessionNotFound
		}
		if err := tx.Where("session_id = ?", id).Delete(&Message{}).Error; err != nil {
			return err
		}
		return tx.Where("session_id = ?", id).Delete(&InputHistory{}).Error
	})
}

// UpdateSessionStats overwrites both counters unconditionally; monotonicity is
// only guaranteed on the IncrementQuestionsAsked path.
func (r *Repo) UpdateSessionStats(ctx context.Context, id string, questionsAsked int, duration string) error {
	return r.db.WithContext(ctx).Model(&Session{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"questions_asked": questionsAsked,
			"duration":        duration,
			"updated_at":      time.Now().UTC(),
		}).Error
}

// IncrementQuestionsAsked adds 1 at the SQL layer. Concurrent increments must
// never lose updates, so this is never read-modify-write.
func (r *Repo) IncrementQuestionsAsked(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&Session{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"questions_asked": gorm.Expr("questions_asked + ?", 1),
			"updated_at":      time.Now().UTC(),
		}).Error
}

func (r *Repo) InsertMessage(ctx context.Context, m *Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ListSessionMessages returns a session's messages in chronological order.
func (r *Repo) ListSessionMessages(ctx context.Context, sessionID string) ([]Message, error) {
	msgs := make([]Message, 0)
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *Repo) DeleteSessionMessages(ctx context.Context, sessionID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&Message{})
	return res.RowsAffected, res.Error
}

func (r *Repo) InsertInput(ctx context.Context, e *InputHistory) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// ListRecentInputs returns up to limit raw inputs across all sessions,
// most recent first.
func (r *Repo) ListRecentInputs(ctx context.Context, limit int) ([]string, error) {
	inputs := make([]string, 0)
	if err := r.db.WithContext(ctx).Model(&InputHistory{}).
		Order("timestamp DESC").
		Limit(limit).
		Pluck("input", &inputs).Error; err != nil {
		return nil, err
	}
	return inputs, nil
}

func (r *Repo) ListSessionInputs(ctx context.Context, sessionID string) ([]InputHistory, error) {
	entries := make([]InputHistory, 0)
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

package session

import (
	"sync"
	"time"

	"github.com/personapath/personapath/internal/ai"
	"github.com/personapath/personapath/internal/model"
)

// Budget bounds one conversation: a turn cap and an estimated-token
// cap. Oldest turns are evicted first once either is exceeded, so the
// generator's context window is never violated.
type Budget struct {
	MaxTurns  int
	MaxTokens int
}

// Session holds one user's dialogue history. All methods serialize on
// the session mutex; the engine assumes one request stream per user
// and concurrent calls from the same user simply queue here.
type Session struct {
	mu         sync.Mutex
	userID     string
	budget     Budget
	turns      []model.ConversationTurn
	tokenCount int
	lastActive time.Time
}

func newSession(userID string, budget Budget) *Session {
	return &Session{
		userID:     userID,
		budget:     budget,
		lastActive: time.Now(),
	}
}

func (s *Session) UserID() string {
	return s.userID
}

func (s *Session) Append(role model.TurnRole, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, model.ConversationTurn{
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	})
	s.tokenCount += ai.EstimateTokens(text)
	s.lastActive = time.Now()
	s.evictLocked()
}

func (s *Session) evictLocked() {
	for len(s.turns) > 0 {
		overTurns := s.budget.MaxTurns > 0 && len(s.turns) > s.budget.MaxTurns
		overTokens := s.budget.MaxTokens > 0 && s.tokenCount > s.budget.MaxTokens
		if !overTurns && !overTokens {
			return
		}
		s.tokenCount -= ai.EstimateTokens(s.turns[0].Text)
		s.turns = s.turns[1:]
	}
	if s.tokenCount < 0 {
		s.tokenCount = 0
	}
}

// History returns a copy of the retained turns, oldest first.
func (s *Session) History() []model.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) TokenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenCount
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive.Before(cutoff)
}

package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/personapath/personapath/internal/session"
)

type SessionCleanupJob struct {
	sessions session.Store
	idleTTL  time.Duration
}

func NewSessionCleanupJob(sessions session.Store, idleTTL time.Duration) *SessionCleanupJob {
	return &SessionCleanupJob{sessions: sessions, idleTTL: idleTTL}
}

func (j *SessionCleanupJob) Name() string {
	return "session_cleanup"
}

func (j *SessionCleanupJob) Run(ctx context.Context) error {
	removed := j.sessions.ExpireIdle(j.idleTTL)
	if removed > 0 {
		logutil.GetLogger(ctx).Info("idle sessions expired", zap.Int("count", removed))
	}
	return nil
}

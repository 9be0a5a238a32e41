package healthcheck

import (
	"context"
	"sync"
	"time"

	"github.com/mileusna/crontab"
	"menlo.ai/learning-client/app/infrastructure/apiclient"
	"menlo.ai/learning-client/app/utils/logger"
)

type Status struct {
	Healthy   bool
	CheckedAt time.Time
	Error     string
}

// HealthcheckCrontabService polls the backend and ends sessions whose token has
// expired before the backend gets a chance to reject it.
type HealthcheckCrontabService struct {
	Client *apiclient.Client

	mu     sync.RWMutex
	status Status
	now    func() time.Time
}

func NewService(client *apiclient.Client) *HealthcheckCrontabService {
	return &HealthcheckCrontabService{
		Client: client,
		now:    time.Now,
	}
}

func (hs *HealthcheckCrontabService) Start(ctx context.Context, ctab *crontab.Crontab) error {
	hs.CheckBackend(ctx)
	hs.CheckSession(ctx)
	return ctab.AddJob("*/2 * * * *", func() {
		hs.CheckBackend(ctx)
		hs.CheckSession(ctx)
	})
}

// CheckBackend calls the backend health endpoint and records the outcome.
func (hs *HealthcheckCrontabService) CheckBackend(ctx context.Context) Status {
	var body struct {
		Status string `json:"status"`
	}
	resp, err := hs.Client.Do(ctx, apiclient.Request{Path: "/health"})
	status := Status{CheckedAt: hs.now()}
	switch {
	case err != nil:
		status.Error = err.Error()
	case resp.SessionExpired:
		status.Error = "health endpoint requires authentication"
	default:
		if err := resp.Payload.Decode(&body); err != nil {
			status.Error = err.Error()
		} else {
			status.Healthy = body.Status == "healthy"
			if !status.Healthy {
				status.Error = "backend reported " + body.Status
			}
		}
	}

	hs.mu.Lock()
	previous := hs.status
	hs.status = status
	hs.mu.Unlock()

	if previous.Healthy != status.Healthy || previous.CheckedAt.IsZero() {
		log := logger.GetLogger().WithField("url", hs.Client.BaseURL())
		if status.Healthy {
			log.Info("healthcheck: backend is up")
		} else {
			log.Warnf("healthcheck: backend is down: %s", status.Error)
		}
	}
	return status
}

// CheckSession ends the session when its token has expired. It reports whether it
// did so.
func (hs *HealthcheckCrontabService) CheckSession(ctx context.Context) bool {
	claims, err := hs.Client.Session().Claims()
	if err != nil || !claims.Expired(hs.now()) {
		return false
	}
	logger.GetLogger().WithField("email", claims.Email()).Info("healthcheck: token expired")
	hs.Client.ExpireSession(ctx)
	return true
}

func (hs *HealthcheckCrontabService) Status() Status {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	return hs.status
}

package usecase

import (
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/service/errtrack"
	"MarketPulse/pkg/config"
	xutil "MarketPulse/pkg/util"
)

// HealthService reports upstream key presence and recent errors.
type HealthService struct {
	cfg     *config.Config
	tracker *errtrack.Tracker
	window  time.Duration
	started time.Time
	now     func() time.Time
}

func NewHealthService(cfg *config.Config, tracker *errtrack.Tracker, now func() time.Time) *HealthService {
	if now == nil {
		now = time.Now
	}
	return &HealthService{
		cfg:     cfg,
		tracker: tracker,
		window:  cfg.Errors.Window,
		started: now(),
		now:     now,
	}
}

// Health is "degraded" when a key is missing or errors occurred within the window.
func (h *HealthService) Health() models.Health {
	now := h.now()
	p := h.cfg.Providers
	apis := models.APIStatus{
		EOD:   p.EOD.APIKey != "",
		Brave: p.Brave.APIKey != "",
		FRED:  p.FRED.APIKey != "",
		BEA:   p.BEA.APIKey != "",
	}
	recent := h.tracker.Since(now.Add(-h.window))

	status := "healthy"
	if !(apis.EOD && apis.Brave && apis.FRED && apis.BEA) || recent > 0 {
		status = "degraded"
	}
	return models.Health{
		Status:        status,
		APIs:          apis,
		RecentErrors:  recent,
		TrackedErrors: h.tracker.Len(),
		LastErrors:    h.tracker.Recent(10),
		Uptime:        now.Sub(h.started).Truncate(time.Second).String(),
		Timestamp:     xutil.UnixMilli(now),
	}
}

package usecase

import (
	"context"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/service/metrics"
	"MarketPulse/internal/service/scoring"

	"golang.org/x/sync/errgroup"
)

// Score grades current market health from SPY, QQQ and the VIX. SPY and QQQ
// are required; an unavailable VIX reads as the default level.
func (m *MarketService) Score(ctx context.Context) (res models.MarketScore, err error) {
	start := time.Now()
	defer func() { metrics.Observe("score", start, err) }()

	var spy, qqq models.Quote
	var vix float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		spy, err = m.src.Quote(gctx, "SPY")
		return err
	})
	g.Go(func() (err error) {
		qqq, err = m.src.Quote(gctx, "QQQ")
		return err
	})
	g.Go(func() error {
		q, verr := m.src.Quote(gctx, "VIX")
		if verr != nil {
			m.degrade("score:VIX", "vix unavailable, using default level", verr)
			return nil
		}
		vix = q.Price
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.MarketScore{}, err
	}
	return m.score(ctx, spy, qqq, vix, m.now()), nil
}

// score looks up average volumes concurrently; an unknown average leaves the
// volume ratio at 1.
func (m *MarketService) score(ctx context.Context, spy, qqq models.Quote, vix float64, now time.Time) models.MarketScore {
	in := models.ScoreInputs{
		SPY: models.ScoreLeg{ChangePercent: spy.ChangePercent, Volume: spy.Volume},
		QQQ: models.ScoreLeg{ChangePercent: qqq.ChangePercent, Volume: qqq.Volume},
		VIX: vix,
	}

	var g errgroup.Group
	g.Go(func() error {
		if avg, err := m.src.AvgVolume(ctx, "SPY", avgVolumeDays, now); err == nil {
			in.SPY.AvgVolume = avg
		}
		return nil
	})
	g.Go(func() error {
		if avg, err := m.src.AvgVolume(ctx, "QQQ", avgVolumeDays, now); err == nil {
			in.QQQ.AvgVolume = avg
		}
		return nil
	})
	_ = g.Wait()

	return scoring.Compute(in, now)
}

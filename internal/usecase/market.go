package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"MarketPulse/internal/domain/errs"
	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/domain/repository"
	"MarketPulse/internal/service/markethours"
	"MarketPulse/internal/service/metrics"
	"MarketPulse/internal/service/scoring"
	"MarketPulse/internal/service/sentiment"
	applogger "MarketPulse/pkg/logger"
)

const (
	topMovers     = 5
	marketNews    = 10
	moverNews     = 3
	avgVolumeDays = 20
	ma200         = 200
)

var symbolPattern = regexp.MustCompile(`^\^?[A-Za-z0-9][A-Za-z0-9.\-]{0,15}$`)

// ErrorTracker records failures that a view absorbs with a fallback.
type ErrorTracker interface {
	Track(source string, err error) models.TrackedError
}

// MarketService composes normalized quotes, macro data and news into views.
type MarketService struct {
	src     *Sources
	history repository.MoverHistory
	ttl     TTLs
	now     func() time.Time
	logger  *applogger.Logger
	tracker ErrorTracker
}

type MarketOption func(*MarketService)

func WithClock(now func() time.Time) MarketOption {
	return func(m *MarketService) { m.now = now }
}

func WithLogger(l *applogger.Logger) MarketOption {
	return func(m *MarketService) { m.logger = l }
}

func WithErrorTracker(t ErrorTracker) MarketOption {
	return func(m *MarketService) { m.tracker = t }
}

func NewMarketService(src *Sources, history repository.MoverHistory, opts ...MarketOption) *MarketService {
	m := &MarketService{
		src:     src,
		history: history,
		ttl:     src.ttl,
		now:     time.Now,
		logger:  applogger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// degrade logs a failure hidden by a fallback and keeps it for the health report.
func (m *MarketService) degrade(source, msg string, err error, fields ...applogger.Field) {
	m.logger.Warn(msg, append(fields, applogger.String("source", source), applogger.Error(err))...)
	if m.tracker != nil {
		m.tracker.Track(source, err)
	}
}

// collect splits fan-out results into quotes and the first error.
func (m *MarketService) collect(view string, results []QuoteResult) ([]models.Quote, error) {
	quotes := make([]models.Quote, 0, len(results))
	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			m.degrade(view+":"+r.Symbol, "quote omitted", r.Err)
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		quotes = append(quotes, r.Quote)
	}
	if firstErr != nil && len(quotes) > 0 {
		metrics.Degraded(view)
	}
	return quotes, firstErr
}

// Data returns the headline market quotes keyed by symbol. Failed legs are omitted.
func (m *MarketService) Data(ctx context.Context) (res map[string]models.Quote, err error) {
	defer func(start time.Time) { metrics.Observe("data", start, err) }(time.Now())

	quotes, firstErr := m.collect("data", m.src.Quotes(ctx, nsQuote, MarketDataSymbols, m.ttl.Quote))
	if len(quotes) == 0 {
		return nil, allFailed("market data", firstErr)
	}
	res = make(map[string]models.Quote, len(quotes))
	for _, q := range quotes {
		res[q.Symbol] = q
	}
	return res, nil
}

// Sectors returns the sector grid sorted by change, strongest first.
func (m *MarketService) Sectors(ctx context.Context) (res []models.Sector, err error) {
	defer func(start time.Time) { metrics.Observe("sectors", start, err) }(time.Now())

	results := m.src.Quotes(ctx, nsSector, sectorSymbols(), m.ttl.Sector)
	quotes, firstErr := m.collect("sectors", results)
	if len(quotes) == 0 {
		return nil, allFailed("sectors", firstErr)
	}
	return buildSectors(results), nil
}

func buildSectors(results []QuoteResult) []models.Sector {
	info := make(map[string]sectorInfo, len(Sectors))
	for _, s := range Sectors {
		info[s.Symbol] = s
	}
	out := make([]models.Sector, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		si, ok := info[r.Symbol]
		if !ok {
			si = sectorInfo{Symbol: r.Symbol, Name: r.Symbol}
		}
		out = append(out, models.Sector{
			Symbol:        si.Symbol,
			Name:          si.Name,
			Color:         si.Color,
			Price:         r.Quote.Price,
			Change:        r.Quote.Change,
			ChangePercent: r.Quote.ChangePercent,
			Volume:        r.Quote.Volume,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangePercent > out[j].ChangePercent })
	return out
}

// Macro never fails: proxy legs default to zero and indicators are omitted.
func (m *MarketService) Macro(ctx context.Context) (models.MacroView, error) {
	start := time.Now()
	defer func() { metrics.Observe("macro", start, nil) }()

	view := models.MacroView{Timestamp: m.now().UTC()}
	legs := []string{BondETF, CurrencyETF, CryptoETF, Treasury10Y}
	results := m.src.Quotes(ctx, nsQuote, legs, m.ttl.Quote)
	degraded := false
	leg := func(i int) models.MacroLeg {
		r := results[i]
		if r.Err != nil {
			degraded = true
			m.degrade("macro:"+r.Symbol, "macro leg defaulted", r.Err)
			return models.MacroLeg{Symbol: r.Symbol}
		}
		return models.MacroLeg{
			Symbol:        r.Quote.Symbol,
			Price:         r.Quote.Price,
			ChangePercent: r.Quote.ChangePercent,
			Volume:        r.Quote.Volume,
		}
	}
	view.Bonds, view.Dollar, view.Crypto, view.Treasury10 = leg(0), leg(1), leg(2), leg(3)

	var wg sync.WaitGroup
	indicators := make([]*models.Indicator, len(MacroSeries))
	for i, series := range MacroSeries {
		wg.Add(1)
		go func(i int, id, name string) {
			defer wg.Done()
			ind, err := m.src.Indicator(ctx, id, name)
			if err != nil {
				m.degrade("macro:"+id, "indicator omitted", err)
				return
			}
			indicators[i] = &ind
		}(i, series.ID, series.Name)
	}
	var gdp *models.GDPReading
	wg.Add(1)
	go func() {
		defer wg.Done()
		g, err := m.src.GDP(ctx)
		if err != nil {
			m.degrade("macro:gdp", "gdp omitted", err)
			return
		}
		gdp = &g
	}()
	wg.Wait()

	view.Indicators = make([]models.Indicator, 0, len(indicators))
	for _, ind := range indicators {
		if ind == nil {
			degraded = true
			continue
		}
		view.Indicators = append(view.Indicators, *ind)
	}
	view.GDP = gdp
	if gdp == nil {
		degraded = true
	}
	if degraded {
		metrics.Degraded("macro")
	}
	return view, nil
}

// SelectMover returns the quote with the greatest absolute change. Ties keep
// the first seen. false when no quote moved.
func SelectMover(quotes []models.Quote) (models.Quote, bool) {
	best := -1
	bestAbs := 0.0
	for i, q := range quotes {
		if a := math.Abs(q.ChangePercent); a > bestAbs {
			best, bestAbs = i, a
		}
	}
	if best < 0 {
		return models.Quote{}, false
	}
	return quotes[best], true
}

// RiskLevel grades a move of changePercent from a base score of 50.
func RiskLevel(changePercent float64) (int, string) {
	score := 50
	switch move := math.Abs(changePercent); {
	case move > 20:
		score += 25
	case move > 10:
		score += 15
	}
	switch {
	case score >= 80:
		return score, models.RiskVeryHigh
	case score >= 60:
		return score, models.RiskHigh
	case score >= 40:
		return score, models.RiskModerate
	case score >= 20:
		return score, models.RiskLow
	default:
		return score, models.RiskVeryLow
	}
}

// MoveReasons explains a move; avgVolume 0 means unknown.
func MoveReasons(q models.Quote, avgVolume float64) []string {
	var reasons []string
	if math.Abs(q.ChangePercent) > 10 {
		reasons = append(reasons, "Significant price movement indicates major market event")
	}
	if avgVolume > 0 && q.Volume > 3*avgVolume {
		reasons = append(reasons, "Unusually high trading volume suggests strong market interest")
	}
	if len(reasons) == 0 {
		return []string{"Analyzing market factors..."}
	}
	return reasons
}

// Mover scans the watch list for the largest move.
func (m *MarketService) Mover(ctx context.Context) (res models.Mover, err error) {
	defer func(start time.Time) { metrics.Observe("mover", start, err) }(time.Now())

	now := m.now().UTC()
	quotes, firstErr := m.collect("mover", m.src.Quotes(ctx, nsMover, WatchList, m.ttl.Mover))
	if len(quotes) == 0 {
		return models.Mover{}, allFailed("mover", firstErr)
	}

	q, ok := SelectMover(quotes)
	if !ok {
		return models.Mover{Found: false, Reason: models.NoSignificantMove, News: []models.NewsArticle{}, Timestamp: now}, nil
	}

	news, nerr := m.src.News(ctx, q.Symbol+" stock news", moverNews)
	if nerr != nil {
		m.degrade("mover:news", "mover news unavailable", nerr, applogger.String("symbol", q.Symbol))
		news = []models.NewsArticle{}
	}
	avg, verr := m.src.AvgVolume(ctx, q.Symbol, avgVolumeDays, now)
	if verr != nil {
		avg = 0
	}

	score, level := RiskLevel(q.ChangePercent)
	sent := sentiment.Analyze(news)
	mover := models.Mover{
		Found:     true,
		Quote:     &q,
		Reasons:   MoveReasons(q, avg),
		RiskScore: score,
		RiskLevel: level,
		Sentiment: &sent,
		News:      news,
		Timestamp: now,
	}

	rec := models.MoverRecord{Symbol: q.Symbol, Price: q.Price, ChangePercent: q.ChangePercent, RiskLevel: level, RecordedAt: now}
	if herr := m.history.Append(ctx, rec); herr != nil {
		m.logger.Error("mover history append failed", applogger.String("source", "history"), applogger.Error(herr))
	}
	return mover, nil
}

// MoverHistory returns recently selected movers, newest first.
func (m *MarketService) MoverHistory(ctx context.Context, limit int) ([]models.MoverRecord, error) {
	return m.history.Recent(ctx, limit)
}

// Snapshot assembles indices, sectors, macro, movers, headlines and score.
// It fails only when every index and sector quote fails.
func (m *MarketService) Snapshot(ctx context.Context) (res *models.Snapshot, err error) {
	defer func(start time.Time) { metrics.Observe("snapshot", start, err) }(time.Now())
	now := m.now()

	var (
		wg        sync.WaitGroup
		indexRes  []QuoteResult
		sectorRes []QuoteResult
		macro     models.MacroView
		news      []models.NewsArticle
	)
	wg.Add(4)
	go func() { defer wg.Done(); indexRes = m.src.Quotes(ctx, nsQuote, Indices, m.ttl.Quote) }()
	go func() { defer wg.Done(); sectorRes = m.src.Quotes(ctx, nsSector, sectorSymbols(), m.ttl.Sector) }()
	go func() { defer wg.Done(); macro, _ = m.Macro(ctx) }()
	go func() {
		defer wg.Done()
		var nerr error
		if news, nerr = m.src.News(ctx, MarketNewsQuery, marketNews); nerr != nil {
			m.degrade("snapshot:news", "market news unavailable", nerr)
			news = []models.NewsArticle{}
		}
	}()
	wg.Wait()

	indices, ierr := m.collect("snapshot", indexRes)
	sectorQuotes, serr := m.collect("snapshot", sectorRes)
	if len(indices) == 0 && len(sectorQuotes) == 0 {
		if ierr == nil {
			ierr = serr
		}
		return nil, allFailed("snapshot", ierr)
	}

	snap := &models.Snapshot{
		Indices:     indices,
		Sectors:     buildSectors(sectorRes),
		Macro:       macro,
		News:        news,
		Status:      markethours.Status(now),
		GeneratedAt: now.UTC(),
	}

	movable := make([]models.Quote, 0, len(indices)+len(sectorQuotes))
	for _, q := range indices {
		if q.Symbol != "VIX" {
			movable = append(movable, q)
		}
	}
	movable = append(movable, sectorQuotes...)
	snap.Gainers, snap.Losers = TopMovers(movable, topMovers)

	bySymbol := make(map[string]models.Quote, len(indices))
	for _, q := range indices {
		bySymbol[q.Symbol] = q
	}
	spy, okSPY := bySymbol["SPY"]
	qqq, okQQQ := bySymbol["QQQ"]
	overall := scoring.NeutralScore
	if okSPY && okQQQ {
		score := m.score(ctx, spy, qqq, bySymbol["VIX"].Price, now)
		snap.Score = &score
		overall = score.Overall.Score
	}
	snap.Analysis = scoring.Analyze(overall, indices, snap.Sectors, macro)
	return snap, nil
}

// TopMovers returns up to n gainers (largest first) and n losers (weakest first).
func TopMovers(quotes []models.Quote, n int) (gainers, losers []models.Quote) {
	gainers, losers = []models.Quote{}, []models.Quote{}
	for _, q := range quotes {
		switch {
		case q.ChangePercent > 0:
			gainers = append(gainers, q)
		case q.ChangePercent < 0:
			losers = append(losers, q)
		}
	}
	sort.SliceStable(gainers, func(i, j int) bool { return gainers[i].ChangePercent > gainers[j].ChangePercent })
	sort.SliceStable(losers, func(i, j int) bool { return losers[i].ChangePercent < losers[j].ChangePercent })
	if len(gainers) > n {
		gainers = gainers[:n]
	}
	if len(losers) > n {
		losers = losers[:n]
	}
	return gainers, losers
}

// Search returns no results for queries shorter than two characters.
func (m *MarketService) Search(ctx context.Context, query string) (res []models.SearchResult, err error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return []models.SearchResult{}, nil
	}
	defer func(start time.Time) { metrics.Observe("search", start, err) }(time.Now())
	return m.src.Search(ctx, query)
}

// Themes returns each theme with its reachable members and average move.
func (m *MarketService) Themes(ctx context.Context) ([]models.ThemeView, error) {
	start := time.Now()
	defer func() { metrics.Observe("themes", start, nil) }()

	out := make([]models.ThemeView, len(Themes))
	var wg sync.WaitGroup
	for i, th := range Themes {
		wg.Add(1)
		go func(i int, th models.Theme) {
			defer wg.Done()
			stocks, _ := m.collect("themes", m.src.Quotes(ctx, nsQuote, th.Symbols, m.ttl.Quote))
			out[i] = models.ThemeView{
				ID:          th.ID,
				Name:        th.Name,
				Description: th.Description,
				Color:       th.Color,
				Stocks:      stocks,
				Performance: ThemePerformance(stocks),
			}
		}(i, th)
	}
	wg.Wait()
	return out, nil
}

// ThemePerformance averages member moves; an empty theme is neutral and weak.
func ThemePerformance(stocks []models.Quote) models.ThemePerformance {
	if len(stocks) == 0 {
		return models.ThemePerformance{Daily: 0, Trend: "neutral", Strength: "weak"}
	}
	var sum float64
	for _, s := range stocks {
		sum += s.ChangePercent
	}
	avg := sum / float64(len(stocks))
	perf := models.ThemePerformance{Daily: avg, Trend: "up", Strength: "moderate"}
	if avg < 0 {
		perf.Trend = "down"
	}
	if math.Abs(avg) >= 1 {
		perf.Strength = "strong"
	}
	return perf
}

// Stock returns the quote of a single symbol.
func (m *MarketService) Stock(ctx context.Context, symbol string) (models.Quote, error) {
	if !symbolPattern.MatchString(symbol) {
		return models.Quote{}, fmt.Errorf("%q: %w", symbol, errs.ErrInvalidSymbol)
	}
	return m.src.Quote(ctx, symbol)
}

// StockHistory returns the last days daily closes with a trailing 200-day average.
func (m *MarketService) StockHistory(ctx context.Context, symbol string, days int) (models.StockHistory, error) {
	if !symbolPattern.MatchString(symbol) {
		return models.StockHistory{}, fmt.Errorf("%q: %w", symbol, errs.ErrInvalidSymbol)
	}
	now := m.now().UTC()
	// calendar window wide enough for days+200 sessions
	window := (days+ma200)*7/5 + 10
	bars, err := m.src.Bars(ctx, symbol, now.AddDate(0, 0, -window), now)
	if err != nil {
		return models.StockHistory{}, err
	}
	if len(bars) == 0 {
		return models.StockHistory{}, fmt.Errorf("history %s: %w", symbol, errs.ErrNoData)
	}
	return models.StockHistory{Symbol: strings.ToUpper(strings.TrimPrefix(symbol, "^")), Points: HistoryPoints(bars, days)}, nil
}

// HistoryPoints keeps the last days bars; MA200 is nil until 200 closes exist.
func HistoryPoints(bars []models.Bar, days int) []models.HistoryPoint {
	startAt := len(bars) - days
	if startAt < 0 {
		startAt = 0
	}
	var window float64
	out := make([]models.HistoryPoint, 0, len(bars)-startAt)
	for i, b := range bars {
		window += b.Close
		if i >= ma200 {
			window -= bars[i-ma200].Close
		}
		if i < startAt {
			continue
		}
		p := models.HistoryPoint{
			Date:   b.Date.Format("2006-01-02"),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
		if i >= ma200-1 {
			avg := window / ma200
			p.MA200 = &avg
		}
		out = append(out, p)
	}
	return out
}

func (m *MarketService) Status() models.MarketStatus {
	return markethours.Status(m.now())
}

func allFailed(view string, err error) error {
	if err == nil {
		err = errs.ErrNoData
	}
	return fmt.Errorf("%s: all sources failed: %w", view, err)
}

// IsClientError reports errors caused by the request rather than upstream.
func IsClientError(err error) bool {
	return errors.Is(err, errs.ErrInvalidSymbol)
}

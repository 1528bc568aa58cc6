package normalize

import (
	"math"
	"net/url"
	"strings"
	"time"

	"MarketPulse/internal/domain/models"
	xutil "MarketPulse/pkg/util"
)

// Normalizer maps upstream payloads into the stable internal shapes.
// Nothing it returns carries NaN or Inf.
type Normalizer struct {
	now func() time.Time
}

type Option func(*Normalizer)

// WithClock sets the time used when a payload has no usable timestamp.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

func New(opts ...Option) *Normalizer {
	n := &Normalizer{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Symbol strips exchange suffixes and index markers: "SPY.US" -> "SPY", "^VIX" -> "VIX".
func Symbol(code string) string {
	s := strings.ToUpper(strings.TrimSpace(code))
	s = strings.TrimPrefix(s, "^")
	for _, suffix := range []string{".US", ".INDX"} {
		s = strings.TrimSuffix(s, suffix)
	}
	return s
}

// Quote normalizes a real-time payload.
func (n *Normalizer) Quote(raw models.RawQuote) models.Quote {
	price, hasPrice := models.First(raw.Close, raw.Price, raw.Open, raw.PreviousClose)
	prev := raw.PreviousClose.Float()
	derivable := hasPrice && prev > 0

	changePercent, ok := models.First(raw.ChangeP, raw.ChangePercent)
	if !ok && derivable {
		changePercent = (price - prev) / prev * 100
	}
	change, ok := models.First(raw.Change)
	if !ok && derivable {
		change = price - prev
	}

	ts := n.now()
	if sec := raw.Timestamp.Float(); sec > 0 {
		ts = time.Unix(int64(sec), 0)
	}

	return models.Quote{
		Symbol:        Symbol(raw.Code),
		Price:         math.Max(0, xutil.Finite(price)),
		Change:        xutil.Finite(change),
		ChangePercent: xutil.Finite(changePercent),
		Volume:        math.Max(0, math.Round(xutil.Finite(raw.Volume.Float()))),
		Timestamp:     ts.UTC(),
	}
}

// Article normalizes a news result. The source falls back to the article host.
func (n *Normalizer) Article(raw models.RawArticle) models.NewsArticle {
	source := raw.Source
	if source == "" {
		source = raw.MetaURL.Hostname
	}
	if source == "" {
		if u, err := url.Parse(raw.URL); err == nil {
			source = u.Hostname()
		}
	}

	published, ok := xutil.ParseTime(raw.PageAge)
	if !ok {
		published, ok = xutil.ParseTime(raw.Age)
	}
	if !ok {
		published = n.now()
	}

	return models.NewsArticle{
		Title:       strings.TrimSpace(raw.Title),
		URL:         raw.URL,
		Source:      strings.TrimPrefix(source, "www."),
		Description: strings.TrimSpace(raw.Description),
		PublishedAt: published.UTC(),
	}
}

// Articles normalizes raws, dropping results without a title or URL.
func (n *Normalizer) Articles(raws []models.RawArticle) []models.NewsArticle {
	out := make([]models.NewsArticle, 0, len(raws))
	for _, r := range raws {
		if r.Title == "" || r.URL == "" {
			continue
		}
		out = append(out, n.Article(r))
	}
	return out
}

// Indicator builds the latest reading of a series from observations sorted
// newest first. Missing observations are skipped; false when none is usable.
func (n *Normalizer) Indicator(seriesID, name string, obs []models.RawObservation) (models.Indicator, bool) {
	var valid []models.RawObservation
	for _, o := range obs {
		if o.Value.Valid {
			valid = append(valid, o)
		}
		if len(valid) == 2 {
			break
		}
	}
	if len(valid) == 0 {
		return models.Indicator{}, false
	}

	ind := models.Indicator{
		SeriesID: seriesID,
		Name:     name,
		Value:    valid[0].Value.Value,
		Date:     valid[0].Date,
	}
	if len(valid) > 1 {
		ind.Previous = valid[1].Value.Value
		ind.Change = xutil.Finite(ind.Value - ind.Previous)
	}
	return ind, true
}

// GDP picks the headline line of the latest quarter.
func (n *Normalizer) GDP(rows []models.RawGDPRow) (models.GDPReading, bool) {
	var best *models.RawGDPRow
	for i := range rows {
		r := &rows[i]
		if r.LineNumber != "1" || !r.DataValue.Valid {
			continue
		}
		if best == nil || r.TimePeriod > best.TimePeriod {
			best = r
		}
	}
	if best == nil {
		return models.GDPReading{}, false
	}
	return models.GDPReading{
		Period:      best.TimePeriod,
		Value:       best.DataValue.Value,
		Description: best.LineDescription,
	}, true
}

// Bar normalizes a daily candle; false when the row has no date or close.
func (n *Normalizer) Bar(raw models.RawBar) (models.Bar, bool) {
	date, ok := xutil.ParseTime(raw.Date)
	if !ok || !raw.Close.Valid {
		return models.Bar{}, false
	}
	return models.Bar{
		Date:   date.UTC(),
		Open:   math.Max(0, raw.Open.Float()),
		High:   math.Max(0, raw.High.Float()),
		Low:    math.Max(0, raw.Low.Float()),
		Close:  math.Max(0, raw.Close.Value),
		Volume: math.Max(0, math.Round(raw.Volume.Float())),
	}, true
}

func (n *Normalizer) Bars(raws []models.RawBar) []models.Bar {
	out := make([]models.Bar, 0, len(raws))
	for _, r := range raws {
		if b, ok := n.Bar(r); ok {
			out = append(out, b)
		}
	}
	return out
}

func (n *Normalizer) SearchResult(raw models.RawSearchResult) models.SearchResult {
	return models.SearchResult{
		Symbol:        Symbol(raw.Code),
		Name:          raw.Name,
		Exchange:      raw.Exchange,
		Type:          raw.Type,
		Country:       raw.Country,
		Currency:      raw.Currency,
		PreviousClose: math.Max(0, raw.PreviousClose.Float()),
	}
}

package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"MarketPulse/internal/domain/models"
)

// NeutralScore stands in for the market score when SPY or QQQ is unavailable.
const NeutralScore = 50

// Trend reads the S&P 500 move: beyond half a percent either way is directional.
func Trend(spyPct float64) string {
	switch {
	case spyPct > 0.5:
		return "bullish"
	case spyPct < -0.5:
		return "bearish"
	default:
		return "neutral"
	}
}

// SectorBreadth measures participation across sectors.
func SectorBreadth(sectors []models.Sector) models.Breadth {
	b := models.Breadth{Quality: BreadthQuality(0), Leaders: []string{}, Laggards: []string{}}
	if len(sectors) == 0 {
		return b
	}

	up := 0
	for _, s := range sectors {
		if s.ChangePercent > 0 {
			up++
		}
	}
	b.Percent = float64(up) / float64(len(sectors)) * 100
	b.Quality = BreadthQuality(b.Percent)

	sorted := append([]models.Sector(nil), sectors...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ChangePercent > sorted[j].ChangePercent })
	for _, s := range sorted[:min(2, len(sorted))] {
		b.Leaders = append(b.Leaders, s.Name)
	}
	for _, s := range sorted[max(0, len(sorted)-2):] {
		b.Laggards = append(b.Laggards, s.Name)
	}
	return b
}

// BreadthQuality is strong above 60%, mixed above 40%, weak otherwise.
func BreadthQuality(pct float64) string {
	switch {
	case pct > 60:
		return "strong"
	case pct > 40:
		return "mixed"
	default:
		return "weak"
	}
}

func marketState(score int) string {
	switch {
	case score > 66:
		return "bullish"
	case score > 33:
		return "neutral"
	default:
		return "cautious"
	}
}

func upDown(pct float64) string {
	if pct > 0 {
		return "up"
	}
	return "down"
}

// Overview describes the market state and, when all three are known, the
// S&P 500, Nasdaq and Dow moves.
func Overview(score int, indices map[string]models.Quote) string {
	out := fmt.Sprintf("The market environment is currently showing %s characteristics. ", marketState(score))
	spy, ok1 := indices["SPY"]
	qqq, ok2 := indices["QQQ"]
	dia, ok3 := indices["DIA"]
	if ok1 && ok2 && ok3 {
		out += fmt.Sprintf("The S&P 500 is %s %.2f%%, while the Nasdaq is %s %.2f%% and the Dow Jones is %s %.2f%%. ",
			upDown(spy.ChangePercent), math.Abs(spy.ChangePercent),
			upDown(qqq.ChangePercent), math.Abs(qqq.ChangePercent),
			upDown(dia.ChangePercent), math.Abs(dia.ChangePercent))
	}
	return out
}

// SectorAnalysis narrates breadth, leaders and laggards.
func SectorAnalysis(b models.Breadth) string {
	out := fmt.Sprintf("Market breadth is %s with %d%% of sectors showing positive performance. ",
		b.Quality, int(math.Round(b.Percent)))
	if len(b.Leaders) > 0 {
		out += fmt.Sprintf("Leading sectors include %s, while %s are underperforming. ",
			strings.Join(b.Leaders, " and "), strings.Join(b.Laggards, " and "))
	}
	return out
}

// RiskMetrics reads bonds, the dollar and bitcoin. A leg without a price was
// not fetched and is left out.
func RiskMetrics(macro models.MacroView) string {
	var b strings.Builder
	if l := macro.Bonds; l.Price > 0 {
		if l.ChangePercent > 0 {
			b.WriteString("Treasury bonds are rising, suggesting defensive positioning in the market. ")
		} else {
			b.WriteString("Treasury bonds are falling, suggesting risk appetite in the market. ")
		}
	}
	if l := macro.Dollar; l.Price > 0 {
		if l.ChangePercent > 0 {
			b.WriteString("The US Dollar is strengthening, which may pressure global assets. ")
		} else {
			b.WriteString("The US Dollar is weakening, which supports global assets. ")
		}
	}
	if l := macro.Crypto; l.Price > 0 {
		if l.ChangePercent > 0 {
			b.WriteString("Bitcoin is rallying, indicating increased risk appetite in digital assets. ")
		} else {
			b.WriteString("Bitcoin is declining, indicating decreased risk appetite in digital assets. ")
		}
	}
	return b.String()
}

// Implications suggests positioning from the score and breadth. sectors keep
// their input order when picking strong ones.
func Implications(score int, b models.Breadth, sectors []models.Sector) string {
	strength := "weak"
	advice := "capital preservation and defensive positioning might be warranted until conditions improve. "
	switch {
	case score > 66:
		strength = "strong"
		advice = "investors might consider maintaining growth exposure while being mindful of position sizing and market levels. "
	case score > 33:
		strength = "moderate"
		advice = "a balanced approach focusing on quality companies and defensive sectors may be appropriate. "
	}
	participation := "narrow"
	switch {
	case b.Percent > 60:
		participation = "broad-based"
	case b.Percent > 40:
		participation = "selective"
	}

	out := fmt.Sprintf("Given the %s market conditions with %s participation, %s", strength, participation, advice)

	var strong []string
	for _, s := range sectors {
		if s.ChangePercent > 0 {
			strong = append(strong, s.Name)
			if len(strong) == 2 {
				break
			}
		}
	}
	if len(strong) > 0 {
		out += fmt.Sprintf("Consider exposure to strong sectors like %s.", strings.Join(strong, " and "))
	}
	return out
}

// Analyze builds the full narrative of a snapshot.
func Analyze(score int, indices []models.Quote, sectors []models.Sector, macro models.MacroView) models.MarketAnalysis {
	bySymbol := make(map[string]models.Quote, len(indices))
	for _, q := range indices {
		bySymbol[q.Symbol] = q
	}
	breadth := SectorBreadth(sectors)
	return models.MarketAnalysis{
		Trend:        Trend(bySymbol["SPY"].ChangePercent),
		Breadth:      breadth,
		Overview:     Overview(score, bySymbol),
		Sectors:      SectorAnalysis(breadth),
		Risk:         RiskMetrics(macro),
		Implications: Implications(score, breadth, sectors),
	}
}

package results

import (
	"math"

	"github.com/AptiPro-2025/exam-session-service/internal/models"
)

// Band is a coarse percentage classification used for presentation only.
type Band string

const (
	BandHigh    Band = "high"
	BandMedium  Band = "medium"
	BandLow     Band = "low"
	BandVeryLow Band = "very-low"
)

// Percentage computes round(scored/total*100) with half-up rounding, so
// 79.5 rounds to 80. A zero total yields 0 rather than an error.
func Percentage(scored, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(scored) / float64(total) * 100))
}

// BandFor classifies a percentage: >=80 high, 60-79 medium, 40-59 low,
// below 40 very-low.
func BandFor(percentage int) Band {
	switch {
	case percentage >= 80:
		return BandHigh
	case percentage >= 60:
		return BandMedium
	case percentage >= 40:
		return BandLow
	default:
		return BandVeryLow
	}
}

// recentResultTotal is the marks denominator for recent-results entries.
// Those entries carry raw marks only; the upstream store fixes their total
// at 30 and does not record the per-test total_marks alongside them.
const recentResultTotal = 30

// PerformanceEntry is one recent result scored for display.
type PerformanceEntry struct {
	Name       string `json:"name"`
	Marks      int    `json:"marks"`
	Percentage int    `json:"percentage"`
	Band       Band   `json:"band"`
}

// PerformanceSummary aggregates a viewer's recent results.
type PerformanceSummary struct {
	Count   int                `json:"count"`
	Average float64            `json:"average"`
	Max     int                `json:"max"`
	Min     int                `json:"min"`
	Entries []PerformanceEntry `json:"entries"`
}

// Summarize computes mean, maximum and minimum percentage across a set of
// recent results. An empty set short-circuits: the second return is false
// and no aggregate is computed.
func Summarize(recent []models.RecentResult) (*PerformanceSummary, bool) {
	if len(recent) == 0 {
		return nil, false
	}

	summary := &PerformanceSummary{
		Count:   len(recent),
		Entries: make([]PerformanceEntry, len(recent)),
	}
	sum := 0
	for i, r := range recent {
		pct := Percentage(r.Marks, recentResultTotal)
		summary.Entries[i] = PerformanceEntry{
			Name:       r.Name,
			Marks:      r.Marks,
			Percentage: pct,
			Band:       BandFor(pct),
		}
		sum += pct
		if i == 0 || pct > summary.Max {
			summary.Max = pct
		}
		if i == 0 || pct < summary.Min {
			summary.Min = pct
		}
	}
	summary.Average = float64(sum) / float64(len(recent))
	return summary, true
}

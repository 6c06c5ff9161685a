// Package stats aggregates one month of mood records into per-emotion shares.
package stats

import (
	"github.com/feelio/feelio-backend/internal/moods/domain"
)

// Share is the portion of a month's entries carrying one emotion.
type Share struct {
	Emotion    domain.Emotion `json:"emotion"`
	Count      int            `json:"count"`
	Percentage int            `json:"percentage"`
	Color      string         `json:"color"`
}

// Breakdown is the aggregated view of a month. Shares are in palette order.
type Breakdown struct {
	Total  int                       `json:"total"`
	Shares [domain.PaletteSize]Share `json:"shares"`
}

// Aggregate counts the palette labels of a month and converts them to integer
// percentages. Labels outside the palette are ignored and excluded from Total.
//
// A single entry always yields exactly 100 for its emotion. With more entries
// every percentage is rounded half-up on its own, so the sum may drift from
// 100 by up to the number of non-zero emotions minus one.
func Aggregate(month domain.MonthMoods) Breakdown {
	var b Breakdown
	for i, e := range domain.Palette {
		b.Shares[i] = Share{Emotion: e, Color: e.Color()}
	}

	for _, label := range month {
		idx := domain.Emotion(label).Index()
		if idx < 0 {
			continue
		}
		b.Shares[idx].Count++
		b.Total++
	}

	switch b.Total {
	case 0:
	case 1:
		for i := range b.Shares {
			if b.Shares[i].Count > 0 {
				b.Shares[i].Percentage = 100
			}
		}
	default:
		for i := range b.Shares {
			b.Shares[i].Percentage = roundPercent(b.Shares[i].Count, b.Total)
		}
	}
	return b
}

// roundPercent computes round-half-up(count/total*100) in integers.
func roundPercent(count, total int) int {
	return (200*count + total) / (2 * total)
}

// Percentages returns the emotion to percentage mapping for all 8 emotions.
func (b Breakdown) Percentages() map[domain.Emotion]int {
	out := make(map[domain.Emotion]int, len(b.Shares))
	for _, s := range b.Shares {
		out[s.Emotion] = s.Percentage
	}
	return out
}

// Sum adds up the percentages.
func (b Breakdown) Sum() int {
	sum := 0
	for _, s := range b.Shares {
		sum += s.Percentage
	}
	return sum
}

// NonZero counts emotions with a positive percentage.
func (b Breakdown) NonZero() int {
	n := 0
	for _, s := range b.Shares {
		if s.Percentage > 0 {
			n++
		}
	}
	return n
}

// Dominant returns the emotion with the most entries; ties go to the earlier
// palette entry. ok is false for an empty month.
func (b Breakdown) Dominant() (e domain.Emotion, ok bool) {
	best := 0
	for _, s := range b.Shares {
		if s.Count > best {
			best = s.Count
			e = s.Emotion
		}
	}
	return e, best > 0
}

// Package stats reduces a tracker's entries into per-type summaries.
package stats

import (
	"math"

	"habitkeeper/internal/server/models"
)

// TrackerStats is one of BooleanStats, NumberStats, TextStats,
// DurationStats or CurrencyStats, discriminated by its Type field.
type TrackerStats interface {
	StatsType() models.TrackerType
}

type BooleanStats struct {
	Type            models.TrackerType `json:"type"`
	TotalEntries    int                `json:"totalEntries"`
	TrueCount       int                `json:"trueCount"`
	FalseCount      int                `json:"falseCount"`
	TruePercentage  int                `json:"truePercentage"`
	FalsePercentage int                `json:"falsePercentage"`
}

type NumberStats struct {
	Type         models.TrackerType `json:"type"`
	TotalEntries int                `json:"totalEntries"`
	Sum          float64            `json:"sum"`
	Average      float64            `json:"average"`
	Min          float64            `json:"min"`
	Max          float64            `json:"max"`
}

type TextStats struct {
	Type         models.TrackerType `json:"type"`
	TotalEntries int                `json:"totalEntries"`
}

type DurationStats struct {
	Type           models.TrackerType `json:"type"`
	TotalEntries   int                `json:"totalEntries"`
	TotalMinutes   int64              `json:"totalMinutes"`
	AverageMinutes float64            `json:"averageMinutes"`
	TotalDisplay   string             `json:"totalDisplay"`
	AverageDisplay string             `json:"averageDisplay"`
}

type CurrencyStats struct {
	Type           models.TrackerType `json:"type"`
	TotalEntries   int                `json:"totalEntries"`
	TotalCents     int64              `json:"totalCents"`
	AverageCents   float64            `json:"averageCents"`
	TotalDisplay   string             `json:"totalDisplay"`
	AverageDisplay string             `json:"averageDisplay"`
}

func (BooleanStats) StatsType() models.TrackerType  { return models.TypeBoolean }
func (NumberStats) StatsType() models.TrackerType   { return models.TypeNumber }
func (TextStats) StatsType() models.TrackerType     { return models.TypeText }
func (DurationStats) StatsType() models.TrackerType { return models.TypeDuration }
func (CurrencyStats) StatsType() models.TrackerType { return models.TypeCurrency }

// Aggregate folds entries into the summary matching trackerType. Every entry
// is assumed to carry a value of that type; feeding mismatched entries is a
// caller error. Empty input yields zero counts and the per-type "zero"
// display, never a division error.
func Aggregate(trackerType models.TrackerType, entries []*models.Entry) TrackerStats {
	switch trackerType {
	case models.TypeBoolean:
		return aggregateBoolean(entries)
	case models.TypeNumber:
		return aggregateNumber(entries)
	case models.TypeText:
		return TextStats{Type: models.TypeText, TotalEntries: len(entries)}
	case models.TypeDuration:
		return aggregateDuration(entries)
	case models.TypeCurrency:
		return aggregateCurrency(entries)
	}
	return nil
}

func aggregateBoolean(entries []*models.Entry) BooleanStats {
	total := len(entries)
	trueCount := 0
	for _, e := range entries {
		if e.Value.Bool() {
			trueCount++
		}
	}
	falseCount := total - trueCount

	stats := BooleanStats{
		Type:         models.TypeBoolean,
		TotalEntries: total,
		TrueCount:    trueCount,
		FalseCount:   falseCount,
	}
	if total > 0 {
		// Round half away from zero, at 1% granularity.
		stats.TruePercentage = int(math.Round(float64(trueCount) / float64(total) * 100))
		stats.FalsePercentage = int(math.Round(float64(falseCount) / float64(total) * 100))
	}
	return stats
}

func aggregateNumber(entries []*models.Entry) NumberStats {
	total := len(entries)
	if total == 0 {
		return NumberStats{Type: models.TypeNumber}
	}

	sum := 0.0
	min := entries[0].Value.Number()
	max := min
	for _, e := range entries {
		v := e.Value.Number()
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return NumberStats{
		Type:         models.TypeNumber,
		TotalEntries: total,
		Sum:          sum,
		Average:      sum / float64(total),
		Min:          min,
		Max:          max,
	}
}

func aggregateDuration(entries []*models.Entry) DurationStats {
	total := len(entries)
	if total == 0 {
		return DurationStats{
			Type:           models.TypeDuration,
			TotalDisplay:   "00:00",
			AverageDisplay: "00:00",
		}
	}

	var totalMinutes int64
	for _, e := range entries {
		totalMinutes += e.Value.Minutes()
	}
	average := float64(totalMinutes) / float64(total)

	return DurationStats{
		Type:           models.TypeDuration,
		TotalEntries:   total,
		TotalMinutes:   totalMinutes,
		AverageMinutes: average,
		TotalDisplay:   models.FormatMinutesHHMM(totalMinutes),
		// The average is floored to whole minutes for display only.
		AverageDisplay: models.FormatMinutesHHMM(int64(math.Floor(average))),
	}
}

func aggregateCurrency(entries []*models.Entry) CurrencyStats {
	total := len(entries)
	if total == 0 {
		return CurrencyStats{
			Type:           models.TypeCurrency,
			TotalDisplay:   "€0.00",
			AverageDisplay: "€0.00",
		}
	}

	var totalCents int64
	for _, e := range entries {
		totalCents += e.Value.Cents()
	}
	average := float64(totalCents) / float64(total)

	return CurrencyStats{
		Type:         models.TypeCurrency,
		TotalEntries: total,
		TotalCents:   totalCents,
		AverageCents: average,
		TotalDisplay: models.FormatCents(totalCents),
		// The average is rounded to the nearest cent for display only.
		AverageDisplay: models.FormatCents(int64(math.Round(average))),
	}
}

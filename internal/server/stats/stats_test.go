package stats

import (
	"testing"

	"habitkeeper/internal/server/models"
)

func boolEntry(v bool) *models.Entry {
	return &models.Entry{Value: models.NewBooleanValue(v)}
}

func numEntry(t *testing.T, v float64) *models.Entry {
	t.Helper()
	value, err := models.NewNumberValue(v, 0)
	if err != nil {
		t.Fatalf("NewNumberValue error: %v", err)
	}
	return &models.Entry{Value: value}
}

func durEntry(minutes int64) *models.Entry {
	return &models.Entry{Value: models.NewDurationValue(minutes)}
}

func curEntry(cents int64) *models.Entry {
	return &models.Entry{Value: models.NewCurrencyValue(cents)}
}

func TestAggregateBoolean(t *testing.T) {
	got := Aggregate(models.TypeBoolean, []*models.Entry{
		boolEntry(true), boolEntry(true), boolEntry(true), boolEntry(false),
	}).(BooleanStats)

	if got.TotalEntries != 4 || got.TrueCount != 3 || got.FalseCount != 1 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.TruePercentage != 75 || got.FalsePercentage != 25 {
		t.Fatalf("unexpected percentages: %+v", got)
	}
}

// 1/3 and 2/3 round half away from zero to 33 and 67; the pair may sum to
// more or less than 100.
func TestAggregateBoolean_RoundedPercentages(t *testing.T) {
	got := Aggregate(models.TypeBoolean, []*models.Entry{
		boolEntry(true), boolEntry(false), boolEntry(false),
	}).(BooleanStats)

	if got.TruePercentage != 33 {
		t.Errorf("TruePercentage = %d, want 33", got.TruePercentage)
	}
	if got.FalsePercentage != 67 {
		t.Errorf("FalsePercentage = %d, want 67", got.FalsePercentage)
	}
}

func TestAggregateBoolean_Empty(t *testing.T) {
	got := Aggregate(models.TypeBoolean, nil).(BooleanStats)

	if got.TotalEntries != 0 || got.TruePercentage != 0 || got.FalsePercentage != 0 {
		t.Fatalf("empty aggregate should be all zeros: %+v", got)
	}
}

func TestAggregateNumber(t *testing.T) {
	got := Aggregate(models.TypeNumber, []*models.Entry{
		numEntry(t, 2), numEntry(t, -1), numEntry(t, 5),
	}).(NumberStats)

	if got.TotalEntries != 3 {
		t.Fatalf("unexpected total: %d", got.TotalEntries)
	}
	if got.Sum != 6 || got.Average != 2 {
		t.Errorf("sum/average = %v/%v, want 6/2", got.Sum, got.Average)
	}
	if got.Min != -1 || got.Max != 5 {
		t.Errorf("min/max = %v/%v, want -1/5", got.Min, got.Max)
	}
}

func TestAggregateNumber_Empty(t *testing.T) {
	got := Aggregate(models.TypeNumber, nil).(NumberStats)

	if got.TotalEntries != 0 || got.Sum != 0 || got.Average != 0 || got.Min != 0 || got.Max != 0 {
		t.Fatalf("empty aggregate should be all zeros: %+v", got)
	}
}

func TestAggregateText(t *testing.T) {
	got := Aggregate(models.TypeText, []*models.Entry{
		{Value: models.NewTextValue("a")}, {Value: models.NewTextValue("b")},
	}).(TextStats)

	if got.TotalEntries != 2 {
		t.Fatalf("unexpected total: %d", got.TotalEntries)
	}
}

func TestAggregateDuration(t *testing.T) {
	// 90 + 45 + 30 = 165 minutes = 02:45, average 55 = 00:55
	got := Aggregate(models.TypeDuration, []*models.Entry{
		durEntry(90), durEntry(45), durEntry(30),
	}).(DurationStats)

	if got.TotalMinutes != 165 {
		t.Errorf("TotalMinutes = %d, want 165", got.TotalMinutes)
	}
	if got.AverageMinutes != 55 {
		t.Errorf("AverageMinutes = %v, want 55", got.AverageMinutes)
	}
	if got.TotalDisplay != "02:45" || got.AverageDisplay != "00:55" {
		t.Errorf("displays = %q/%q", got.TotalDisplay, got.AverageDisplay)
	}
}

// A fractional average keeps full precision in the number and floors only
// the display.
func TestAggregateDuration_FractionalAverage(t *testing.T) {
	got := Aggregate(models.TypeDuration, []*models.Entry{
		durEntry(60), durEntry(61),
	}).(DurationStats)

	if got.AverageMinutes != 60.5 {
		t.Errorf("AverageMinutes = %v, want 60.5", got.AverageMinutes)
	}
	if got.AverageDisplay != "01:00" {
		t.Errorf("AverageDisplay = %q, want 01:00", got.AverageDisplay)
	}
}

func TestAggregateDuration_Empty(t *testing.T) {
	got := Aggregate(models.TypeDuration, nil).(DurationStats)

	if got.TotalDisplay != "00:00" || got.AverageDisplay != "00:00" {
		t.Fatalf("empty displays = %q/%q, want 00:00", got.TotalDisplay, got.AverageDisplay)
	}
}

func TestAggregateCurrency(t *testing.T) {
	// €12.99 + €7.01 + €10.00 = €30.00, average €10.00
	got := Aggregate(models.TypeCurrency, []*models.Entry{
		curEntry(1299), curEntry(701), curEntry(1000),
	}).(CurrencyStats)

	if got.TotalCents != 3000 {
		t.Errorf("TotalCents = %d, want 3000", got.TotalCents)
	}
	if got.TotalDisplay != "€30.00" || got.AverageDisplay != "€10.00" {
		t.Errorf("displays = %q/%q", got.TotalDisplay, got.AverageDisplay)
	}
}

// A fractional cent average keeps full precision in the number and rounds
// only the display.
func TestAggregateCurrency_FractionalAverage(t *testing.T) {
	got := Aggregate(models.TypeCurrency, []*models.Entry{
		curEntry(100), curEntry(101),
	}).(CurrencyStats)

	if got.AverageCents != 100.5 {
		t.Errorf("AverageCents = %v, want 100.5", got.AverageCents)
	}
	if got.AverageDisplay != "€1.01" {
		t.Errorf("AverageDisplay = %q, want €1.01", got.AverageDisplay)
	}
}

func TestAggregateCurrency_NegativeTotal(t *testing.T) {
	got := Aggregate(models.TypeCurrency, []*models.Entry{
		curEntry(-550),
	}).(CurrencyStats)

	if got.TotalDisplay != "€-5.50" {
		t.Errorf("TotalDisplay = %q, want €-5.50", got.TotalDisplay)
	}
}

func TestAggregateCurrency_Empty(t *testing.T) {
	got := Aggregate(models.TypeCurrency, nil).(CurrencyStats)

	if got.TotalDisplay != "€0.00" || got.AverageDisplay != "€0.00" {
		t.Fatalf("empty displays = %q/%q, want €0.00", got.TotalDisplay, got.AverageDisplay)
	}
}

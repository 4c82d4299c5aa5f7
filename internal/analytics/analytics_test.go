package analytics

import (
	"testing"

	"github.com/HaPhanBaoMinh/podmon/internal/domain"
)

func pts(usages ...int) []domain.SeriesPoint {
	out := make([]domain.SeriesPoint, len(usages))
	for i, u := range usages {
		out[i] = domain.SeriesPoint{Time: string(rune('a' + i)), Usage: u}
	}
	return out
}

func TestAverageUtilization(t *testing.T) {
	tests := []struct {
		in   []domain.SeriesPoint
		want int
	}{
		{nil, 0},
		{pts(50), 50},
		{pts(10, 11), 11},
		{pts(1, 2, 2), 2},
	}
	for _, tc := range tests {
		if got := AverageUtilization(tc.in); got != tc.want {
			t.Fatalf("AverageUtilization(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPeak(t *testing.T) {
	if got := Peak(nil); got != NoPeak || got.Time != "N/A" {
		t.Fatalf("empty series must fall back to N/A, got %+v", got)
	}
	series := pts(10, 80, 80, 5)
	if got := Peak(series); got.Time != series[1].Time {
		t.Fatalf("first maximum wins, got %q", got.Time)
	}
}

func TestPeakLabel(t *testing.T) {
	if PeakLabel(domain.FrameToday) != "Peak Time" || PeakLabel(domain.FrameMonth) != "Peak Day" {
		t.Fatalf("unexpected peak labels")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]domain.Pod{
		{Status: domain.StatusOccupied},
		{Status: domain.StatusAvailable},
		{Status: domain.StatusMaintenance},
		{Status: domain.StatusAvailable},
		{Status: domain.StatusMaintenance},
	})
	want := Summary{Total: 5, Available: 2, Occupied: 1, Maintenance: 2}
	if s != want {
		t.Fatalf("summary %+v, want %+v", s, want)
	}
	if s.Unavailable() != 3 || s.AvailableRatio() != 0.4 {
		t.Fatalf("unavailable=%d ratio=%v", s.Unavailable(), s.AvailableRatio())
	}
	if (Summary{}).AvailableRatio() != 0 {
		t.Fatalf("empty fleet ratio must be 0")
	}
}

func TestDemarcation(t *testing.T) {
	series := []domain.SeriesPoint{{Time: "07:00"}, {Time: "08:00"}, {Time: "17:00"}, {Time: "18:00"}}
	start, end := Demarcation(series)
	if start != "08:00" || end != "18:00" {
		t.Fatalf("got %q %q", start, end)
	}
	start, end = Demarcation([]domain.SeriesPoint{{Time: "Mon 8"}})
	if start != "" || end != "" {
		t.Fatalf("daily labels must not match, got %q %q", start, end)
	}
	if !ShowDemarcation(domain.FrameToday, false) || ShowDemarcation(domain.FrameToday, true) || ShowDemarcation(domain.FrameWeek, false) {
		t.Fatalf("unexpected demarcation visibility")
	}
}

func TestRange(t *testing.T) {
	co2 := func(p domain.SeriesPoint) float64 { return float64(p.CO2) }
	if _, _, ok := Range(nil, co2); ok {
		t.Fatalf("empty series must report !ok")
	}
	lo, hi, ok := Range([]domain.SeriesPoint{{CO2: 500}, {CO2: 420}, {CO2: 900}}, co2)
	if !ok || lo != 420 || hi != 900 {
		t.Fatalf("range = %v..%v", lo, hi)
	}
}

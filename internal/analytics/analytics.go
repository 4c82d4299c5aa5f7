package analytics

import (
	"math"

	"github.com/HaPhanBaoMinh/podmon/internal/domain"
)

// NoPeak is reported when a series has no buckets.
var NoPeak = domain.SeriesPoint{Time: "N/A", Usage: 0}

// AverageUtilization is the rounded mean usage; 0 for an empty series.
func AverageUtilization(pts []domain.SeriesPoint) int {
	if len(pts) == 0 {
		return 0
	}
	total := 0
	for _, p := range pts {
		total += p.Usage
	}
	return int(math.Round(float64(total) / float64(len(pts))))
}

// Peak returns the first bucket with the highest usage, or NoPeak.
func Peak(pts []domain.SeriesPoint) domain.SeriesPoint {
	if len(pts) == 0 {
		return NoPeak
	}
	best := pts[0]
	for _, p := range pts[1:] {
		if p.Usage > best.Usage {
			best = p
		}
	}
	return best
}

// PeakLabel captions the peak card for a frame.
func PeakLabel(tf domain.TimeFrame) string {
	if tf == domain.FrameToday {
		return "Peak Time"
	}
	return "Peak Day"
}

type Summary struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Maintenance int `json:"maintenance"`
}

// Unavailable counts every pod that cannot be booked right now.
func (s Summary) Unavailable() int {
	return s.Total - s.Available
}

// AvailableRatio is the share of available pods in [0,1].
func (s Summary) AvailableRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Available) / float64(s.Total)
}

func Summarize(pods []domain.Pod) Summary {
	s := Summary{Total: len(pods)}
	for _, p := range pods {
		switch p.Status {
		case domain.StatusAvailable:
			s.Available++
		case domain.StatusOccupied:
			s.Occupied++
		case domain.StatusMaintenance:
			s.Maintenance++
		}
	}
	return s
}

// Demarcation finds the labels of the first buckets starting the work day
// ("08") and ending it ("18"). Missing labels come back empty.
func Demarcation(pts []domain.SeriesPoint) (start, end string) {
	for _, p := range pts {
		if start == "" && len(p.Time) >= 2 && p.Time[:2] == "08" {
			start = p.Time
		}
		if end == "" && len(p.Time) >= 2 && p.Time[:2] == "18" {
			end = p.Time
		}
	}
	return start, end
}

// ShowDemarcation reports whether start/end markers are drawn: only on the
// hourly frame with the business hours filter off.
func ShowDemarcation(tf domain.TimeFrame, businessHoursOnly bool) bool {
	return tf == domain.FrameToday && !businessHoursOnly
}

// Range returns min and max of a metric over a series; ok is false when the
// series is empty.
func Range(pts []domain.SeriesPoint, metric func(domain.SeriesPoint) float64) (lo, hi float64, ok bool) {
	if len(pts) == 0 {
		return 0, 0, false
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		v := metric(p)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, true
}

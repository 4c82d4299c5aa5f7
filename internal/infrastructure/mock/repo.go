package mock

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/HaPhanBaoMinh/podmon/internal/domain"
)

// Business hours window, inclusive on both ends.
const (
	WorkStartHour = 8
	WorkEndHour   = 18
)

// Repo generates synthetic pod telemetry. The shape of a series depends only
// on the arguments and the clock; every value is drawn fresh per call.
type Repo struct {
	now func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

func New() *Repo {
	src := rand.NewSource(time.Now().UnixNano())
	return &Repo{now: time.Now, rnd: rand.New(src)}
}

// NewWithSource wires an explicit clock and random source (tests, -seed).
func NewWithSource(now func() time.Time, rnd *rand.Rand) *Repo {
	if now == nil {
		now = time.Now
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Repo{now: now, rnd: rnd}
}

func (r *Repo) Generate(tf domain.TimeFrame, businessHoursOnly bool) ([]domain.SeriesPoint, error) {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	switch tf {
	case domain.FrameToday:
		return r.hourly(now, businessHoursOnly), nil
	case domain.FrameWeek:
		return r.daily(now, 7, businessHoursOnly), nil
	case domain.FrameMonth:
		return r.daily(now, 30, businessHoursOnly), nil
	}
	return nil, fmt.Errorf("mock: generate: %w: %q", domain.ErrUnknownTimeFrame, tf)
}

func (r *Repo) hourly(now time.Time, businessHoursOnly bool) []domain.SeriesPoint {
	weekend := isWeekend(now)
	out := make([]domain.SeriesPoint, 0, 24)
	for h := 0; h < 24; h++ {
		inHours := IsBusinessHour(h)
		if businessHoursOnly && !inHours {
			continue
		}
		active := businessHoursOnly || (inHours && !weekend)

		baseCO2, baseTVOC := 420.0, 30.0
		if active {
			baseCO2, baseTVOC = 800, 120
		}
		co2 := int(math.Floor(baseCO2 + r.rnd.Float64()*300 - 150))
		temp := round1(21.5 + r.rnd.Float64()*2 - 1)
		humidity := int(math.Floor(45 + r.rnd.Float64()*10 - 5))
		tvoc := int(math.Floor(baseTVOC + r.rnd.Float64()*40 - 20))
		occupied := 0
		if active && r.rnd.Float64() > 0.4 {
			occupied = 1
		}
		var usage int
		if active {
			usage = int(math.Floor(r.rnd.Float64()*60 + 40))
		} else {
			usage = int(math.Floor(r.rnd.Float64() * 10))
		}

		out = append(out, domain.SeriesPoint{
			Time:      HourLabel(h),
			CO2:       max(400, co2),
			Temp:      temp,
			Humidity:  humidity,
			TVOC:      max(0, tvoc),
			Occupancy: occupied,
			Usage:     usage,
			Color:     usageColor(usage, 70),
		})
	}
	return out
}

func (r *Repo) daily(now time.Time, days int, businessHoursOnly bool) []domain.SeriesPoint {
	out := make([]domain.SeriesPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		weekend := isWeekend(d)
		if businessHoursOnly && weekend {
			continue
		}
		active := !weekend

		baseCO2, baseTVOC := 410.0, 20.0
		if active {
			baseCO2, baseTVOC = 750, 100
		}
		co2 := int(math.Floor(baseCO2 + r.rnd.Float64()*200))
		temp := round1(21 + r.rnd.Float64())
		humidity := int(math.Floor(40 + r.rnd.Float64()*10))
		tvoc := int(math.Floor(baseTVOC + r.rnd.Float64()*30))
		// day level flag: 1 marks a high utilisation day
		occupied := 0
		var usage int
		if active {
			occupied = 1
			usage = int(math.Floor(r.rnd.Float64()*50 + 50))
		} else {
			usage = int(math.Floor(r.rnd.Float64() * 20))
		}

		out = append(out, domain.SeriesPoint{
			Time:      DayLabel(d),
			CO2:       max(400, co2),
			Temp:      temp,
			Humidity:  humidity,
			TVOC:      max(0, tvoc),
			Occupancy: occupied,
			Usage:     usage,
			Color:     usageColor(usage, 60),
		})
	}
	return out
}

// IsBusinessHour reports whether hour h falls in [WorkStartHour, WorkEndHour].
func IsBusinessHour(h int) bool {
	return h >= WorkStartHour && h <= WorkEndHour
}

// HourLabel formats an hour bucket as "HH:00".
func HourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// DayLabel formats a day bucket as short weekday and day of month ("Mon 14").
func DayLabel(d time.Time) string {
	return d.Format("Mon 2")
}

// helpers
func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func usageColor(usage, threshold int) domain.ColorToken {
	if usage > threshold {
		return domain.ColorDanger
	}
	return domain.ColorAccent
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

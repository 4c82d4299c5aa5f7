package mock

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/HaPhanBaoMinh/podmon/internal/domain"
)

// Wednesday
var midweek = time.Date(2024, time.January, 17, 10, 30, 0, 0, time.UTC)

// Saturday
var saturday = time.Date(2024, time.January, 13, 10, 30, 0, 0, time.UTC)

func newTestRepo(now time.Time, seed int64) *Repo {
	return NewWithSource(func() time.Time { return now }, rand.New(rand.NewSource(seed)))
}

func hourOf(t *testing.T, label string) int {
	t.Helper()
	if len(label) != 5 || !strings.HasSuffix(label, ":00") {
		t.Fatalf("label %q is not HH:00", label)
	}
	h, err := strconv.Atoi(label[:2])
	if err != nil {
		t.Fatalf("label %q: %v", label, err)
	}
	return h
}

func TestTodayAllHoursAscending(t *testing.T) {
	r := newTestRepo(midweek, 1)
	pts, err := r.Generate(domain.FrameToday, false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(pts) != 24 {
		t.Fatalf("expected 24 hourly points, got %d", len(pts))
	}
	for i, p := range pts {
		if got := hourOf(t, p.Time); got != i {
			t.Fatalf("point %d has hour %d", i, got)
		}
	}
}

func TestTodayBusinessHoursOnly(t *testing.T) {
	r := newTestRepo(saturday, 2)
	pts, err := r.Generate(domain.FrameToday, true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(pts) != 11 {
		t.Fatalf("expected 11 points for 08..18, got %d", len(pts))
	}
	prev := -1
	for _, p := range pts {
		h := hourOf(t, p.Time)
		if h < WorkStartHour || h > WorkEndHour {
			t.Fatalf("hour %d outside business hours", h)
		}
		if h <= prev {
			t.Fatalf("hours not ascending: %d after %d", h, prev)
		}
		prev = h
		// the filter forces every retained bucket active, even on a weekend
		if p.Usage < 40 || p.Usage > 99 {
			t.Fatalf("active usage %d out of [40,99]", p.Usage)
		}
	}
}

func TestTodayWeekendIsInactive(t *testing.T) {
	r := newTestRepo(saturday, 3)
	pts, err := r.Generate(domain.FrameToday, false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, p := range pts {
		if p.Usage > 9 {
			t.Fatalf("%s: weekend usage %d should be < 10", p.Time, p.Usage)
		}
		if p.Occupancy != 0 {
			t.Fatalf("%s: weekend bucket reported occupied", p.Time)
		}
		if p.CO2 > 570 {
			t.Fatalf("%s: inactive co2 %d above baseline range", p.Time, p.CO2)
		}
		if p.Color != domain.ColorAccent {
			t.Fatalf("%s: low usage must use accent, got %s", p.Time, p.Color)
		}
	}
}

func TestTodayActivityShape(t *testing.T) {
	r := newTestRepo(midweek, 4)
	pts, err := r.Generate(domain.FrameToday, false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i, p := range pts {
		active := IsBusinessHour(i)
		if active && p.Usage < 40 {
			t.Fatalf("%s: active usage %d < 40", p.Time, p.Usage)
		}
		if !active && (p.Usage > 9 || p.Occupancy != 0) {
			t.Fatalf("%s: inactive bucket usage=%d occupancy=%d", p.Time, p.Usage, p.Occupancy)
		}
		if p.Temp < 20.5 || p.Temp > 22.5 {
			t.Fatalf("%s: temp %.1f outside 21.5±1", p.Time, p.Temp)
		}
		if p.Humidity < 40 || p.Humidity > 49 {
			t.Fatalf("%s: humidity %d outside 45±5", p.Time, p.Humidity)
		}
		want := domain.ColorAccent
		if p.Usage > 70 {
			want = domain.ColorDanger
		}
		if p.Color != want {
			t.Fatalf("%s: usage %d colour %s, want %s", p.Time, p.Usage, p.Color, want)
		}
	}
}

func TestDailyFramesEndTodayOldestFirst(t *testing.T) {
	tests := []struct {
		frame domain.TimeFrame
		days  int
	}{
		{domain.FrameWeek, 7},
		{domain.FrameMonth, 30},
	}
	for _, tc := range tests {
		r := newTestRepo(midweek, 5)
		pts, err := r.Generate(tc.frame, false)
		if err != nil {
			t.Fatalf("%s: %v", tc.frame, err)
		}
		if len(pts) != tc.days {
			t.Fatalf("%s: expected %d points, got %d", tc.frame, tc.days, len(pts))
		}
		for i, p := range pts {
			d := midweek.AddDate(0, 0, -(tc.days - 1 - i))
			if p.Time != d.Format("Mon 2") {
				t.Fatalf("%s: point %d label %q, want %q", tc.frame, i, p.Time, d.Format("Mon 2"))
			}
			weekend := d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
			if weekend && p.Occupancy != 0 {
				t.Fatalf("%s: weekend %q flagged as high utilisation", tc.frame, p.Time)
			}
			if !weekend && p.Occupancy != 1 {
				t.Fatalf("%s: weekday %q not flagged", tc.frame, p.Time)
			}
			if weekend && (p.CO2 >= 750 || p.TVOC >= 100 || p.Usage > 19) {
				t.Fatalf("%s: weekend %q has active baselines: %+v", tc.frame, p.Time, p)
			}
			want := domain.ColorAccent
			if p.Usage > 60 {
				want = domain.ColorDanger
			}
			if p.Color != want {
				t.Fatalf("%s: %q usage %d colour %s, want %s", tc.frame, p.Time, p.Usage, p.Color, want)
			}
		}
	}
}

func TestWeekBusinessHoursSkipsWeekends(t *testing.T) {
	r := newTestRepo(midweek, 6)
	pts, err := r.Generate(domain.FrameWeek, true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(pts) != 5 {
		t.Fatalf("expected 5 weekdays, got %d", len(pts))
	}
	for _, p := range pts {
		if strings.HasPrefix(p.Time, "Sat") || strings.HasPrefix(p.Time, "Sun") {
			t.Fatalf("weekend %q survived business hours filter", p.Time)
		}
	}
}

func TestFlooringInvariant(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		for _, tf := range domain.TimeFrames {
			for _, bh := range []bool{false, true} {
				r := newTestRepo(saturday, seed)
				pts, err := r.Generate(tf, bh)
				if err != nil {
					t.Fatalf("generate: %v", err)
				}
				for _, p := range pts {
					if p.CO2 < 400 || p.TVOC < 0 {
						t.Fatalf("%s/%v seed %d: %+v violates floors", tf, bh, seed, p)
					}
				}
			}
		}
	}
}

func TestSameShapeDifferentValues(t *testing.T) {
	r := newTestRepo(midweek, 7)
	a, _ := r.Generate(domain.FrameMonth, false)
	b, _ := r.Generate(domain.FrameMonth, false)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	same := true
	for i := range a {
		if a[i].Time != b[i].Time || a[i].Occupancy != b[i].Occupancy {
			t.Fatalf("shape differs at %d: %+v vs %+v", i, a[i], b[i])
		}
		if a[i].CO2 != b[i].CO2 || a[i].Usage != b[i].Usage {
			same = false
		}
	}
	if same {
		t.Fatalf("two calls produced identical values")
	}
}

func TestUnknownTimeFrame(t *testing.T) {
	r := newTestRepo(midweek, 8)
	_, err := r.Generate(domain.TimeFrame("year"), false)
	if !errors.Is(err, domain.ErrUnknownTimeFrame) {
		t.Fatalf("expected ErrUnknownTimeFrame, got %v", err)
	}
}

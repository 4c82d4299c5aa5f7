package domain

// PodRepo holds the fleet. Mutations on an unknown id are no-ops and report
// false; they never fail.
type PodRepo interface {
	List() []Pod
	Get(id string) (Pod, bool)
	SetStatus(id string, s Status) bool
	SetPosition(id string, x, y float64) bool
}

// SeriesRepo produces chronological telemetry for a time frame.
type SeriesRepo interface {
	Generate(tf TimeFrame, businessHoursOnly bool) ([]SeriesPoint, error)
}

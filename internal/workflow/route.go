package workflow

// Route classifies a finished video by measured narration length.
type Route int

const (
	// RouteShort publishes the video as a single upload.
	RouteShort Route = iota
	// RouteLong splits the video into bounded parts before publishing.
	RouteLong
)

func (r Route) String() string {
	if r == RouteLong {
		return "long"
	}
	return "short"
}

// Classify routes by the probed duration. A video exactly at the limit still
// fits the short form, so the boundary is inclusive.
func Classify(durationSeconds, maxSeconds float64) Route {
	if durationSeconds <= maxSeconds {
		return RouteShort
	}
	return RouteLong
}

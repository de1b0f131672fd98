package monitoring

import "time"

// Timeframes accepted by the metrics query.
const (
	TimeframeWeek     = "week"
	TimeframeMonth    = "month"
	TimeframeSemester = "semester"
)

func ValidTimeframe(tf string) bool {
	switch tf {
	case TimeframeWeek, TimeframeMonth, TimeframeSemester:
		return true
	}
	return false
}

type (
	// Overall holds the headline numbers shown on the monitoring screen.
	Overall struct {
		Attendance       int     `json:"attendance"` // percent
		Completion       int     `json:"completion"` // percent
		Satisfaction     float64 `json:"satisfaction"`
		ReportsSubmitted int     `json:"reportsSubmitted"`
	}

	CourseMetrics struct {
		Course     string `json:"course"`
		Attendance int    `json:"attendance"` // percent
		Completion int    `json:"completion"` // percent
		Reports    int    `json:"reports"`
	}

	Activity struct {
		Action string    `json:"action"`
		User   string    `json:"user"`
		Course string    `json:"course"`
		Time   time.Time `json:"time"` // UTC
	}

	Metrics struct {
		Timeframe      string          `json:"timeframe"`
		Overall        Overall         `json:"overall"`
		ByCourse       []CourseMetrics `json:"byCourse"`
		RecentActivity []Activity      `json:"recentActivity"`
	}
)

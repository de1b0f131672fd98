package monitoring

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/lefika/ripota/core/rating"
	"github.com/lefika/ripota/core/report"
)

const maxRecentActivity = 10

var timeframeCutoffs = map[string]time.Duration{
	TimeframeWeek:     7 * 24 * time.Hour,
	TimeframeMonth:    30 * 24 * time.Hour,
	TimeframeSemester: 120 * 24 * time.Hour,
}

type (
	Service interface {
		// Metrics aggregates reports and ratings submitted within the
		// given timeframe.
		Metrics(ctx context.Context, timeframe string) (Metrics, error)
	}

	service struct {
		reportRepo report.Repository
		ratingRepo rating.Repository
		nowFunc    func() time.Time
	}
)

var _ Service = (*service)(nil)

func NewService(reportRepo report.Repository, ratingRepo rating.Repository) Service {
	return &service{
		reportRepo: reportRepo,
		ratingRepo: ratingRepo,
		nowFunc:    time.Now,
	}
}

func (svc *service) Metrics(ctx context.Context, timeframe string) (Metrics, error) {
	if !ValidTimeframe(timeframe) {
		timeframe = TimeframeWeek
	}
	cutoff := svc.nowFunc().UTC().Add(-timeframeCutoffs[timeframe])

	reports, err := svc.reportRepo.QueryAllReports(ctx)
	if err != nil {
		return Metrics{}, err
	}
	ratings, err := svc.ratingRepo.QueryAllRatings(ctx)
	if err != nil {
		return Metrics{}, err
	}

	reports = reportsSince(reports, cutoff)
	ratings = ratingsSince(ratings, cutoff)

	m := Metrics{
		Timeframe:      timeframe,
		Overall:        overall(reports, ratings),
		ByCourse:       byCourse(reports),
		RecentActivity: recentActivity(reports, ratings),
	}
	return m, nil
}

func reportsSince(reports []report.Report, cutoff time.Time) []report.Report {
	kept := make([]report.Report, 0, len(reports))
	for _, r := range reports {
		if !r.CreatedAt.Before(cutoff) {
			kept = append(kept, r)
		}
	}
	return kept
}

func ratingsSince(ratings []rating.Rating, cutoff time.Time) []rating.Rating {
	kept := make([]rating.Rating, 0, len(ratings))
	for _, r := range ratings {
		if !r.CreatedAt.Before(cutoff) {
			kept = append(kept, r)
		}
	}
	return kept
}

// attendancePercent is actual/registered as a rounded percentage, 0 when
// the report carries no registered-student count.
func attendancePercent(r report.Report) int {
	if r.TotalRegisteredStudents <= 0 {
		return 0
	}
	pct := float64(r.ActualStudentsPresent) / float64(r.TotalRegisteredStudents) * 100
	return int(math.Round(math.Min(pct, 100)))
}

func overall(reports []report.Report, ratings []rating.Rating) Overall {
	var o Overall
	o.ReportsSubmitted = len(reports)

	if len(reports) > 0 {
		var attSum, reviewed int
		for _, r := range reports {
			attSum += attendancePercent(r)
			if r.Status == report.StatusReviewed {
				reviewed++
			}
		}
		o.Attendance = attSum / len(reports)
		o.Completion = int(math.Round(float64(reviewed) / float64(len(reports)) * 100))
	}

	if len(ratings) > 0 {
		var starSum int
		for _, r := range ratings {
			starSum += r.Stars
		}
		avg := float64(starSum) / float64(len(ratings))
		o.Satisfaction = math.Round(avg*10) / 10
	}
	return o
}

func byCourse(reports []report.Report) []CourseMetrics {
	type agg struct {
		attSum, reviewed, count int
	}
	aggs := make(map[string]*agg)
	order := make([]string, 0)
	for _, r := range reports {
		a, ok := aggs[r.CourseName]
		if !ok {
			a = &agg{}
			aggs[r.CourseName] = a
			order = append(order, r.CourseName)
		}
		a.attSum += attendancePercent(r)
		if r.Status == report.StatusReviewed {
			a.reviewed++
		}
		a.count++
	}

	metrics := make([]CourseMetrics, 0, len(order))
	for _, course := range order {
		a := aggs[course]
		metrics = append(metrics, CourseMetrics{
			Course:     course,
			Attendance: a.attSum / a.count,
			Completion: int(math.Round(float64(a.reviewed) / float64(a.count) * 100)),
			Reports:    a.count,
		})
	}
	return metrics
}

func recentActivity(reports []report.Report, ratings []rating.Rating) []Activity {
	activity := make([]Activity, 0, len(reports)+len(ratings))
	for _, r := range reports {
		activity = append(activity, Activity{
			Action: "Report Submitted",
			User:   r.LecturerName,
			Course: r.CourseName,
			Time:   r.CreatedAt,
		})
		if r.Status == report.StatusReviewed {
			activity = append(activity, Activity{
				Action: "Feedback Added",
				User:   "Principal Lecturer",
				Course: r.CourseName,
				Time:   r.UpdatedAt,
			})
		}
	}
	for _, r := range ratings {
		activity = append(activity, Activity{
			Action: "Rating Added",
			User:   r.StudentName,
			Course: r.CourseName,
			Time:   r.CreatedAt,
		})
	}

	sort.SliceStable(activity, func(i, j int) bool { return activity[i].Time.After(activity[j].Time) })
	if len(activity) > maxRecentActivity {
		activity = activity[:maxRecentActivity]
	}
	return activity
}

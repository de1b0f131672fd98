package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("report not found")

type (
	Repository interface {
		CreateReport(ctx context.Context, rpt Report) (Report, error)
		QueryAllReports(ctx context.Context) ([]Report, error)
		GetReportByID(ctx context.Context, id string) (Report, error)
		FilterReports(ctx context.Context, filter QueryFilter) ([]Report, error)
		UpdateReport(ctx context.Context, rpt Report) (Report, error)
	}

	Service interface {
		Submit(ctx context.Context, nr NewReport, lecturerName string) (Report, error)
		QueryAll(ctx context.Context) ([]Report, error)
		QueryByLecturer(ctx context.Context, lecturerName string) ([]Report, error)
		GetByID(ctx context.Context, id string) (Report, error)
		AddFeedback(ctx context.Context, id string, fb Feedback) (Report, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Submit(ctx context.Context, nr NewReport, lecturerName string) (Report, error) {
	now := time.Now().UTC()
	rpt := Report{
		ID:                      uuid.NewString(),
		FacultyName:             nr.FacultyName,
		ClassName:               nr.ClassName,
		WeekOfReporting:         nr.WeekOfReporting,
		DateOfLecture:           nr.DateOfLecture,
		CourseName:              nr.CourseName,
		CourseCode:              nr.CourseCode,
		LecturerName:            lecturerName,
		ActualStudentsPresent:   nr.ActualStudentsPresent,
		TotalRegisteredStudents: nr.TotalRegisteredStudents,
		Venue:                   nr.Venue,
		ScheduledTime:           nr.ScheduledTime,
		TopicTaught:             nr.TopicTaught,
		LearningOutcomes:        nr.LearningOutcomes,
		Recommendations:         nr.Recommendations,
		Status:                  StatusSubmitted,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	return svc.repo.CreateReport(ctx, rpt)
}

func (svc *service) QueryAll(ctx context.Context) ([]Report, error) {
	return svc.repo.QueryAllReports(ctx)
}

func (svc *service) QueryByLecturer(ctx context.Context, lecturerName string) ([]Report, error) {
	return svc.repo.FilterReports(ctx, QueryFilter{LecturerName: lecturerName})
}

func (svc *service) GetByID(ctx context.Context, id string) (Report, error) {
	return svc.repo.GetReportByID(ctx, id)
}

func (svc *service) AddFeedback(ctx context.Context, id string, fb Feedback) (Report, error) {
	rpt, err := svc.repo.GetReportByID(ctx, id)
	if err != nil {
		return Report{}, err
	}
	rpt.Feedback = fb.Feedback
	rpt.Status = StatusReviewed
	rpt.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateReport(ctx, rpt)
}

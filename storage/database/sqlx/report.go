package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/lefika/ripota/core/report"
)

type reportRow struct {
	ID                      string    `db:"id"`
	FacultyName             string    `db:"faculty_name"`
	ClassName               string    `db:"class_name"`
	WeekOfReporting         string    `db:"week_of_reporting"`
	DateOfLecture           string    `db:"date_of_lecture"`
	CourseName              string    `db:"course_name"`
	CourseCode              string    `db:"course_code"`
	LecturerName            string    `db:"lecturer_name"`
	ActualStudentsPresent   int       `db:"actual_students_present"`
	TotalRegisteredStudents int       `db:"total_registered_students"`
	Venue                   string    `db:"venue"`
	ScheduledTime           string    `db:"scheduled_time"`
	TopicTaught             string    `db:"topic_taught"`
	LearningOutcomes        string    `db:"learning_outcomes"`
	Recommendations         string    `db:"recommendations"`
	Status                  string    `db:"status"`
	Feedback                string    `db:"feedback"`
	CreatedAt               time.Time `db:"created_at"`
	UpdatedAt               time.Time `db:"updated_at"`
}

func (r reportRow) toDomain() report.Report {
	return report.Report{
		ID:                      r.ID,
		FacultyName:             r.FacultyName,
		ClassName:               r.ClassName,
		WeekOfReporting:         r.WeekOfReporting,
		DateOfLecture:           r.DateOfLecture,
		CourseName:              r.CourseName,
		CourseCode:              r.CourseCode,
		LecturerName:            r.LecturerName,
		ActualStudentsPresent:   r.ActualStudentsPresent,
		TotalRegisteredStudents: r.TotalRegisteredStudents,
		Venue:                   r.Venue,
		ScheduledTime:           r.ScheduledTime,
		TopicTaught:             r.TopicTaught,
		LearningOutcomes:        r.LearningOutcomes,
		Recommendations:         r.Recommendations,
		Status:                  r.Status,
		Feedback:                r.Feedback,
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
}

func toReports(rows []reportRow) []report.Report {
	reports := make([]report.Report, 0, len(rows))
	for _, r := range rows {
		reports = append(reports, r.toDomain())
	}
	return reports
}

type reportRepository struct {
	db *sqlx.DB
}

var _ report.Repository = (*reportRepository)(nil)

func NewReportRepository(db *sqlx.DB) report.Repository {
	return &reportRepository{db: db}
}

func (repo *reportRepository) CreateReport(ctx context.Context, rpt report.Report) (report.Report, error) {
	query := `
		INSERT INTO report (id, faculty_name, class_name, week_of_reporting, date_of_lecture,
		                    course_name, course_code, lecturer_name, actual_students_present,
		                    total_registered_students, venue, scheduled_time, topic_taught,
		                    learning_outcomes, recommendations, status, feedback, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := repo.db.ExecContext(ctx, query,
		rpt.ID, rpt.FacultyName, rpt.ClassName, rpt.WeekOfReporting, rpt.DateOfLecture,
		rpt.CourseName, rpt.CourseCode, rpt.LecturerName, rpt.ActualStudentsPresent,
		rpt.TotalRegisteredStudents, rpt.Venue, rpt.ScheduledTime, rpt.TopicTaught,
		rpt.LearningOutcomes, rpt.Recommendations, rpt.Status, rpt.Feedback, rpt.CreatedAt, rpt.UpdatedAt)
	if err != nil {
		return report.Report{}, errors.Wrap(err, "inserting report")
	}
	return rpt, nil
}

func (repo *reportRepository) QueryAllReports(ctx context.Context) ([]report.Report, error) {
	var rows []reportRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM report ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying reports")
	}
	return toReports(rows), nil
}

func (repo *reportRepository) GetReportByID(ctx context.Context, id string) (report.Report, error) {
	var row reportRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM report WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return report.Report{}, report.ErrNotFound
	}
	if err != nil {
		return report.Report{}, errors.Wrap(err, "getting report by id")
	}
	return row.toDomain(), nil
}

func (repo *reportRepository) FilterReports(ctx context.Context, filter report.QueryFilter) ([]report.Report, error) {
	query := `SELECT * FROM report WHERE 1=1`
	args := make([]interface{}, 0, 3)
	if filter.LecturerName != "" {
		args = append(args, filter.LecturerName)
		query += ` AND lecturer_name = ?`
	}
	if filter.CourseCode != "" {
		args = append(args, filter.CourseCode)
		query += ` AND course_code = ?`
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = ?`
	}
	query += ` ORDER BY created_at`

	var rows []reportRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "filtering reports")
	}
	return toReports(rows), nil
}

func (repo *reportRepository) UpdateReport(ctx context.Context, rpt report.Report) (report.Report, error) {
	query := `
		UPDATE report
		SET feedback = $2, status = $3, updated_at = $4
		WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, rpt.ID, rpt.Feedback, rpt.Status, rpt.UpdatedAt)
	if err != nil {
		return report.Report{}, errors.Wrap(err, "updating report")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return report.Report{}, report.ErrNotFound
	}
	return rpt, nil
}

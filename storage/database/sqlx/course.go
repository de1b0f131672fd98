package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/lefika/ripota/core/course"
)

type courseRow struct {
	ID          string    `db:"id"`
	CourseCode  string    `db:"course_code"`
	CourseName  string    `db:"course_name"`
	Description string    `db:"description"`
	Credits     int       `db:"credits"`
	Lecturer    string    `db:"lecturer"`
	Stream      string    `db:"stream"`
	Semester    int       `db:"semester"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r courseRow) toDomain() course.Course {
	return course.Course{
		ID:          r.ID,
		CourseCode:  r.CourseCode,
		CourseName:  r.CourseName,
		Description: r.Description,
		Credits:     r.Credits,
		Lecturer:    r.Lecturer,
		Stream:      r.Stream,
		Semester:    r.Semester,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	query := `
		INSERT INTO course (id, course_code, course_name, description, credits, lecturer, stream,
		                    semester, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := repo.db.ExecContext(ctx, query,
		crs.ID, crs.CourseCode, crs.CourseName, crs.Description, crs.Credits, crs.Lecturer,
		crs.Stream, crs.Semester, crs.CreatedAt, crs.UpdatedAt)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM course ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, r.toDomain())
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	var row courseRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM course WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return course.Course{}, course.ErrNotFound
	}
	if err != nil {
		return course.Course{}, errors.Wrap(err, "getting course by id")
	}
	return row.toDomain(), nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	query := `
		UPDATE course
		SET course_code = $2, course_name = $3, description = $4, credits = $5, lecturer = $6,
		    stream = $7, semester = $8, updated_at = $9
		WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query,
		crs.ID, crs.CourseCode, crs.CourseName, crs.Description, crs.Credits, crs.Lecturer,
		crs.Stream, crs.Semester, crs.UpdatedAt)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return crs, nil
}

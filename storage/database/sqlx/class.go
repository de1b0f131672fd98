package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/lefika/ripota/core/class"
)

type classRow struct {
	ID         string    `db:"id"`
	ClassName  string    `db:"class_name"`
	CourseName string    `db:"course_name"`
	CourseCode string    `db:"course_code"`
	Lecturer   string    `db:"lecturer"`
	Schedule   string    `db:"schedule"`
	Venue      string    `db:"venue"`
	Capacity   int       `db:"capacity"`
	Status     string    `db:"status"`
	CreatedBy  string    `db:"created_by"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r classRow) toDomain() class.Class {
	return class.Class{
		ID:         r.ID,
		ClassName:  r.ClassName,
		CourseName: r.CourseName,
		CourseCode: r.CourseCode,
		Lecturer:   r.Lecturer,
		Schedule:   r.Schedule,
		Venue:      r.Venue,
		Capacity:   r.Capacity,
		Status:     r.Status,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type classRepository struct {
	db *sqlx.DB
}

var _ class.Repository = (*classRepository)(nil)

func NewClassRepository(db *sqlx.DB) class.Repository {
	return &classRepository{db: db}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls class.Class) (class.Class, error) {
	query := `
		INSERT INTO class (id, class_name, course_name, course_code, lecturer, schedule, venue,
		                   capacity, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := repo.db.ExecContext(ctx, query,
		cls.ID, cls.ClassName, cls.CourseName, cls.CourseCode, cls.Lecturer, cls.Schedule, cls.Venue,
		cls.Capacity, cls.Status, cls.CreatedBy, cls.CreatedAt, cls.UpdatedAt)
	if err != nil {
		return class.Class{}, errors.Wrap(err, "inserting class")
	}
	return cls, nil
}

func (repo *classRepository) QueryAllClasses(ctx context.Context) ([]class.Class, error) {
	var rows []classRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM class ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	classes := make([]class.Class, 0, len(rows))
	for _, r := range rows {
		classes = append(classes, r.toDomain())
	}
	return classes, nil
}

func (repo *classRepository) GetClassByID(ctx context.Context, id string) (class.Class, error) {
	var row classRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM class WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return class.Class{}, class.ErrNotFound
	}
	if err != nil {
		return class.Class{}, errors.Wrap(err, "getting class by id")
	}
	return row.toDomain(), nil
}

func (repo *classRepository) UpdateClass(ctx context.Context, cls class.Class) (class.Class, error) {
	query := `
		UPDATE class
		SET class_name = $2, course_name = $3, course_code = $4, lecturer = $5, schedule = $6,
		    venue = $7, capacity = $8, status = $9, updated_at = $10
		WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query,
		cls.ID, cls.ClassName, cls.CourseName, cls.CourseCode, cls.Lecturer, cls.Schedule,
		cls.Venue, cls.Capacity, cls.Status, cls.UpdatedAt)
	if err != nil {
		return class.Class{}, errors.Wrap(err, "updating class")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return class.Class{}, class.ErrNotFound
	}
	return cls, nil
}

func (repo *classRepository) DeleteClassByID(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM class WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting class")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return class.ErrNotFound
	}
	return nil
}

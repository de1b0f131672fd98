package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/lefika/ripota/core/rating"
)

type ratingRow struct {
	ID          string    `db:"id"`
	CourseName  string    `db:"course_name"`
	Lecturer    string    `db:"lecturer"`
	Stars       int       `db:"stars"`
	Comments    string    `db:"comments"`
	Anonymous   bool      `db:"anonymous"`
	StudentID   string    `db:"student_id"`
	StudentName string    `db:"student_name"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r ratingRow) toDomain() rating.Rating {
	return rating.Rating{
		ID:          r.ID,
		CourseName:  r.CourseName,
		Lecturer:    r.Lecturer,
		Stars:       r.Stars,
		Comments:    r.Comments,
		Anonymous:   r.Anonymous,
		StudentID:   r.StudentID,
		StudentName: r.StudentName,
		CreatedAt:   r.CreatedAt,
	}
}

func toRatings(rows []ratingRow) []rating.Rating {
	ratings := make([]rating.Rating, 0, len(rows))
	for _, r := range rows {
		ratings = append(ratings, r.toDomain())
	}
	return ratings
}

type ratingRepository struct {
	db *sqlx.DB
}

var _ rating.Repository = (*ratingRepository)(nil)

func NewRatingRepository(db *sqlx.DB) rating.Repository {
	return &ratingRepository{db: db}
}

func (repo *ratingRepository) CreateRating(ctx context.Context, rtg rating.Rating) (rating.Rating, error) {
	query := `
		INSERT INTO rating (id, course_name, lecturer, stars, comments, anonymous, student_id,
		                    student_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := repo.db.ExecContext(ctx, query,
		rtg.ID, rtg.CourseName, rtg.Lecturer, rtg.Stars, rtg.Comments, rtg.Anonymous,
		rtg.StudentID, rtg.StudentName, rtg.CreatedAt)
	if err != nil {
		return rating.Rating{}, errors.Wrap(err, "inserting rating")
	}
	return rtg, nil
}

func (repo *ratingRepository) QueryAllRatings(ctx context.Context) ([]rating.Rating, error) {
	var rows []ratingRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM rating ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying ratings")
	}
	return toRatings(rows), nil
}

func (repo *ratingRepository) GetRatingByID(ctx context.Context, id string) (rating.Rating, error) {
	var row ratingRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM rating WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return rating.Rating{}, rating.ErrNotFound
	}
	if err != nil {
		return rating.Rating{}, errors.Wrap(err, "getting rating by id")
	}
	return row.toDomain(), nil
}

func (repo *ratingRepository) QueryRatingsByStudent(ctx context.Context, studentID string) ([]rating.Rating, error) {
	var rows []ratingRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM rating WHERE student_id = $1 ORDER BY created_at`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying ratings by student")
	}
	return toRatings(rows), nil
}

func (repo *ratingRepository) DeleteRatingByID(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM rating WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting rating")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return rating.ErrNotFound
	}
	return nil
}

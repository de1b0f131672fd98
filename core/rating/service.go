package rating

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/lefika/ripota/core/user"
)

var (
	ErrNotFound = errors.New("rating not found")
	ErrNotOwner = errors.New("rating belongs to another student")
)

type (
	Repository interface {
		CreateRating(ctx context.Context, rtg Rating) (Rating, error)
		QueryAllRatings(ctx context.Context) ([]Rating, error)
		GetRatingByID(ctx context.Context, id string) (Rating, error)
		QueryRatingsByStudent(ctx context.Context, studentID string) ([]Rating, error)
		DeleteRatingByID(ctx context.Context, id string) error
	}

	Service interface {
		Submit(ctx context.Context, nr NewRating, student user.User) (Rating, error)
		// QueryVisible returns all ratings for lecturers/leaders and only
		// the student's own ratings otherwise.
		QueryVisible(ctx context.Context, viewer user.User) ([]Rating, error)
		Delete(ctx context.Context, id string, requester user.User) error
		CourseAverages(ctx context.Context) ([]CourseAverage, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Submit(ctx context.Context, nr NewRating, student user.User) (Rating, error) {
	name := student.Name
	if nr.Anonymous {
		name = "Anonymous"
	}
	rtg := Rating{
		ID:          uuid.NewString(),
		CourseName:  nr.CourseName,
		Lecturer:    nr.Lecturer,
		Stars:       nr.Stars,
		Comments:    nr.Comments,
		Anonymous:   nr.Anonymous,
		StudentID:   student.ID,
		StudentName: name,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateRating(ctx, rtg)
}

func (svc *service) QueryVisible(ctx context.Context, viewer user.User) ([]Rating, error) {
	if viewer.IsStudent() {
		return svc.repo.QueryRatingsByStudent(ctx, viewer.ID)
	}
	return svc.repo.QueryAllRatings(ctx)
}

func (svc *service) Delete(ctx context.Context, id string, requester user.User) error {
	rtg, err := svc.repo.GetRatingByID(ctx, id)
	if err != nil {
		return err
	}
	if rtg.StudentID != requester.ID {
		return ErrNotOwner
	}
	return svc.repo.DeleteRatingByID(ctx, id)
}

func (svc *service) CourseAverages(ctx context.Context) ([]CourseAverage, error) {
	ratings, err := svc.repo.QueryAllRatings(ctx)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]int)
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range ratings {
		if _, seen := counts[r.CourseName]; !seen {
			order = append(order, r.CourseName)
		}
		sums[r.CourseName] += r.Stars
		counts[r.CourseName]++
	}

	avgs := make([]CourseAverage, 0, len(order))
	for _, course := range order {
		avg := float64(sums[course]) / float64(counts[course])
		avgs = append(avgs, CourseAverage{
			CourseName: course,
			Average:    math.Round(avg*10) / 10,
			Count:      counts[course],
		})
	}
	return avgs, nil
}

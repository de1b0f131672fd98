package course

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
	}

	Service interface {
		Create(ctx context.Context, nc NewCourse) (Course, error)
		QueryAll(ctx context.Context) ([]Course, error)
		GetByID(ctx context.Context, id string) (Course, error)
		Update(ctx context.Context, id string, uc UpdateCourse) (Course, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	crs := Course{
		ID:          uuid.NewString(),
		CourseCode:  nc.CourseCode,
		CourseName:  nc.CourseName,
		Description: nc.Description,
		Credits:     nc.Credits,
		Lecturer:    nc.Lecturer,
		Stream:      nc.Stream,
		Semester:    nc.Semester,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id string, uc UpdateCourse) (Course, error) {
	crs, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, err
	}
	if uc.CourseCode != "" {
		crs.CourseCode = uc.CourseCode
	}
	if uc.CourseName != "" {
		crs.CourseName = uc.CourseName
	}
	if uc.Description != "" {
		crs.Description = uc.Description
	}
	if uc.Credits != 0 {
		crs.Credits = uc.Credits
	}
	if uc.Lecturer != "" {
		crs.Lecturer = uc.Lecturer
	}
	if uc.Stream != "" {
		crs.Stream = uc.Stream
	}
	if uc.Semester != 0 {
		crs.Semester = uc.Semester
	}
	crs.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(ctx, crs)
}

package class

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("class not found")

type (
	Repository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		QueryAllClasses(ctx context.Context) ([]Class, error)
		GetClassByID(ctx context.Context, id string) (Class, error)
		UpdateClass(ctx context.Context, cls Class) (Class, error)
		DeleteClassByID(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, nc NewClass, createdBy string) (Class, error)
		QueryAll(ctx context.Context) ([]Class, error)
		GetByID(ctx context.Context, id string) (Class, error)
		Update(ctx context.Context, id string, uc UpdateClass) (Class, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, nc NewClass, createdBy string) (Class, error) {
	now := time.Now().UTC()
	cls := Class{
		ID:         uuid.NewString(),
		ClassName:  nc.ClassName,
		CourseName: nc.CourseName,
		CourseCode: nc.CourseCode,
		Lecturer:   nc.Lecturer,
		Schedule:   nc.Schedule,
		Venue:      nc.Venue,
		Capacity:   nc.Capacity,
		Status:     nc.Status,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateClass(ctx, cls)
}

func (svc *service) QueryAll(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryAllClasses(ctx)
}

func (svc *service) GetByID(ctx context.Context, id string) (Class, error) {
	return svc.repo.GetClassByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id string, uc UpdateClass) (Class, error) {
	cls, err := svc.repo.GetClassByID(ctx, id)
	if err != nil {
		return Class{}, err
	}
	if uc.ClassName != "" {
		cls.ClassName = uc.ClassName
	}
	if uc.CourseName != "" {
		cls.CourseName = uc.CourseName
	}
	if uc.CourseCode != "" {
		cls.CourseCode = uc.CourseCode
	}
	if uc.Lecturer != "" {
		cls.Lecturer = uc.Lecturer
	}
	if uc.Schedule != "" {
		cls.Schedule = uc.Schedule
	}
	if uc.Venue != "" {
		cls.Venue = uc.Venue
	}
	if uc.Capacity != 0 {
		cls.Capacity = uc.Capacity
	}
	if uc.Status != "" {
		cls.Status = uc.Status
	}
	cls.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateClass(ctx, cls)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteClassByID(ctx, id)
}

package class

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lefika/ripota/core"
)

// Class statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Class struct {
	ID         string    `json:"id"`
	ClassName  string    `json:"class_name"`
	CourseName string    `json:"course_name"`
	CourseCode string    `json:"course_code"`
	Lecturer   string    `json:"lecturer"`
	Schedule   string    `json:"schedule,omitempty"`
	Venue      string    `json:"venue,omitempty"`
	Capacity   int       `json:"capacity,omitempty"`
	Status     string    `json:"status"`
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	ClassName  string `json:"class_name" validate:"required"`
	CourseName string `json:"course_name" validate:"required"`
	CourseCode string `json:"course_code" validate:"required,alphanum_"`
	Lecturer   string `json:"lecturer" validate:"required"`
	Schedule   string `json:"schedule"`
	Venue      string `json:"venue"`
	Capacity   int    `json:"capacity" validate:"omitempty,min=1"`
	Status     string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.ClassName = core.CleanString(nc.ClassName)
	nc.CourseName = core.CleanString(nc.CourseName)
	nc.CourseCode = core.CleanString(nc.CourseCode)
	nc.Lecturer = core.CleanString(nc.Lecturer)
	if nc.Status == "" {
		nc.Status = StatusActive
	}
	return validate.Struct(nc)
}

// UpdateClass defines what may be modified on an existing Class.
// Zero-valued fields are left unchanged.
type UpdateClass struct {
	ClassName  string `json:"class_name"`
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code" validate:"omitempty,alphanum_"`
	Lecturer   string `json:"lecturer"`
	Schedule   string `json:"schedule"`
	Venue      string `json:"venue"`
	Capacity   int    `json:"capacity" validate:"omitempty,min=1"`
	Status     string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (uc *UpdateClass) Validate(validate *validator.Validate) error {
	uc.ClassName = core.CleanString(uc.ClassName)
	uc.CourseName = core.CleanString(uc.CourseName)
	uc.CourseCode = core.CleanString(uc.CourseCode)
	uc.Lecturer = core.CleanString(uc.Lecturer)
	return validate.Struct(uc)
}

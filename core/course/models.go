package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lefika/ripota/core"
)

type Course struct {
	ID          string    `json:"course_id"`
	CourseCode  string    `json:"course_code"`
	CourseName  string    `json:"course_name"`
	Description string    `json:"description,omitempty"`
	Credits     int       `json:"credits"`
	Lecturer    string    `json:"lecturer,omitempty"`
	Stream      string    `json:"stream,omitempty"`
	Semester    int       `json:"semester"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	CourseCode  string `json:"course_code" validate:"required,alphanum_"`
	CourseName  string `json:"course_name" validate:"required"`
	Description string `json:"description"`
	Credits     int    `json:"credits" validate:"required,min=1,max=30"`
	Lecturer    string `json:"lecturer"`
	Stream      string `json:"stream"`
	Semester    int    `json:"semester" validate:"required,min=1,max=12"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.CourseCode = core.CleanString(nc.CourseCode)
	nc.CourseName = core.CleanString(nc.CourseName)
	nc.Lecturer = core.CleanString(nc.Lecturer)
	nc.Stream = core.CleanString(nc.Stream)
	return validate.Struct(nc)
}

// UpdateCourse defines what may be modified on an existing Course.
// Zero-valued fields are left unchanged.
type UpdateCourse struct {
	CourseCode  string `json:"course_code" validate:"omitempty,alphanum_"`
	CourseName  string `json:"course_name"`
	Description string `json:"description"`
	Credits     int    `json:"credits" validate:"omitempty,min=1,max=30"`
	Lecturer    string `json:"lecturer"`
	Stream      string `json:"stream"`
	Semester    int    `json:"semester" validate:"omitempty,min=1,max=12"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.CourseCode = core.CleanString(uc.CourseCode)
	uc.CourseName = core.CleanString(uc.CourseName)
	uc.Lecturer = core.CleanString(uc.Lecturer)
	uc.Stream = core.CleanString(uc.Stream)
	return validate.Struct(uc)
}

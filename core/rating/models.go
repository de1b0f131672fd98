package rating

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lefika/ripota/core"
)

// Rating is a student's 1..5 star rating of a course/lecturer.
// Anonymous ratings keep StudentID for ownership but display "Anonymous".
type Rating struct {
	ID          string    `json:"id"`
	CourseName  string    `json:"course"`
	Lecturer    string    `json:"lecturer,omitempty"`
	Stars       int       `json:"rating"`
	Comments    string    `json:"comments,omitempty"`
	Anonymous   bool      `json:"anonymous"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// NewRating contains information needed to submit a rating.
type NewRating struct {
	CourseName string `json:"course" validate:"required"`
	Lecturer   string `json:"lecturer"`
	Stars      int    `json:"rating" validate:"required,min=1,max=5"`
	Comments   string `json:"comments"`
	Anonymous  bool   `json:"anonymous"`
}

func (nr *NewRating) Validate(validate *validator.Validate) error {
	nr.CourseName = core.CleanString(nr.CourseName)
	nr.Lecturer = core.CleanString(nr.Lecturer)
	nr.Comments = core.CleanString(nr.Comments)
	return validate.Struct(nr)
}

// CourseAverage is the aggregate view of all ratings for one course.
type CourseAverage struct {
	CourseName string  `json:"course"`
	Average    float64 `json:"average"`
	Count      int     `json:"count"`
}

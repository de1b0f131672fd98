package report

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lefika/ripota/core"
)

// Report statuses
const (
	StatusSubmitted = "submitted"
	StatusReviewed  = "reviewed"
)

// Report is a lecture report submitted by a lecturer, optionally reviewed
// by a principal lecturer (feedback set, status moves to "reviewed").
type Report struct {
	ID                      string    `json:"id"`
	FacultyName             string    `json:"faculty_name"`
	ClassName               string    `json:"class_name"`
	WeekOfReporting         string    `json:"week_of_reporting"`
	DateOfLecture           string    `json:"date_of_lecture"`
	CourseName              string    `json:"course_name"`
	CourseCode              string    `json:"course_code"`
	LecturerName            string    `json:"lecturer_name"`
	ActualStudentsPresent   int       `json:"actual_students_present"`
	TotalRegisteredStudents int       `json:"total_registered_students"`
	Venue                   string    `json:"venue"`
	ScheduledTime           string    `json:"scheduled_time"`
	TopicTaught             string    `json:"topic_taught"`
	LearningOutcomes        string    `json:"learning_outcomes"`
	Recommendations         string    `json:"recommendations,omitempty"`
	Status                  string    `json:"status"`
	Feedback                string    `json:"feedback,omitempty"`
	CreatedAt               time.Time `json:"created_at"` // UTC
	UpdatedAt               time.Time `json:"updated_at"` // UTC
}

// NewReport contains information needed to submit a lecture report.
type NewReport struct {
	FacultyName             string `json:"faculty_name" validate:"required"`
	ClassName               string `json:"class_name" validate:"required"`
	WeekOfReporting         string `json:"week_of_reporting" validate:"required"`
	DateOfLecture           string `json:"date_of_lecture" validate:"required"`
	CourseName              string `json:"course_name" validate:"required"`
	CourseCode              string `json:"course_code" validate:"required"`
	ActualStudentsPresent   int    `json:"actual_students_present" validate:"min=0"`
	TotalRegisteredStudents int    `json:"total_registered_students" validate:"required,min=1"`
	Venue                   string `json:"venue" validate:"required"`
	ScheduledTime           string `json:"scheduled_time" validate:"required"`
	TopicTaught             string `json:"topic_taught" validate:"required"`
	LearningOutcomes        string `json:"learning_outcomes" validate:"required"`
	Recommendations         string `json:"recommendations"`
}

func (nr *NewReport) Validate(validate *validator.Validate) error {
	nr.FacultyName = core.CleanString(nr.FacultyName)
	nr.ClassName = core.CleanString(nr.ClassName)
	nr.WeekOfReporting = core.CleanString(nr.WeekOfReporting)
	nr.CourseName = core.CleanString(nr.CourseName)
	nr.CourseCode = core.CleanString(nr.CourseCode)
	nr.Venue = core.CleanString(nr.Venue)
	nr.TopicTaught = core.CleanString(nr.TopicTaught)
	return validate.Struct(nr)
}

// Feedback is a principal lecturer's review of a submitted report.
type Feedback struct {
	Feedback string `json:"feedback" validate:"required"`
}

func (f *Feedback) Validate(validate *validator.Validate) error {
	f.Feedback = core.CleanString(f.Feedback)
	return validate.Struct(f)
}

type QueryFilter struct {
	LecturerName string `query:"lecturer"`
	CourseCode   string `query:"course_code"`
	Status       string `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.LecturerName == "" && qf.CourseCode == "" && qf.Status == ""
}

package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lefika/ripota/core/report"
	"github.com/lefika/ripota/core/user"
)

func reportPayload() map[string]interface{} {
	return map[string]interface{}{
		"faculty_name":              "FICT",
		"class_name":                "BSCSM Y1 S1",
		"week_of_reporting":         "Week 6",
		"date_of_lecture":           "2026-03-02",
		"course_name":               "Web Design",
		"course_code":               "DIWA2110",
		"actual_students_present":   38,
		"total_registered_students": 45,
		"venue":                     "Room 101",
		"scheduled_time":            "09:00 - 11:00",
		"topic_taught":              "Flexbox layouts",
		"learning_outcomes":         "Students can build responsive grids",
	}
}

func Test_reportApi_submit(t *testing.T) {
	env := setup(t)
	student := env.createUser(t, "Lineo Khumalo", "lineo@test.ls", "Sup3rS3cret", user.RoleStudent, true)
	lecturer := env.createUser(t, "Thabo Mokoena", "thabo@test.ls", "Sup3rS3cret", user.RoleLecturer, true)
	prl := env.createUser(t, "Palesa Nthunya", "palesa@test.ls", "Sup3rS3cret", user.RolePRL, true)

	t.Run("lecturer submits; name comes from the session", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/reports", env.tokenFor(t, lecturer), reportPayload())
		assert.Equal(t, http.StatusCreated, rec.Code)

		var rpt report.Report
		decodeBody(t, rec, &rpt)
		assert.NotEmpty(t, rpt.ID)
		assert.Equal(t, "Thabo Mokoena", rpt.LecturerName)
		assert.Equal(t, report.StatusSubmitted, rpt.Status)
	})

	t.Run("student cannot submit", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/reports", env.tokenFor(t, student), reportPayload())
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("prl cannot submit", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/reports", env.tokenFor(t, prl), reportPayload())
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing required fields", func(t *testing.T) {
		payload := reportPayload()
		delete(payload, "topic_taught")
		rec := env.request(t, http.MethodPost, "/reports", env.tokenFor(t, lecturer), payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var fields map[string]string
		decodeBody(t, rec, &fields)
		assert.Contains(t, fields, "topic_taught")
	})
}

func Test_reportApi_query(t *testing.T) {
	env := setup(t)
	student := env.createUser(t, "Lineo Khumalo", "lineo@test.ls", "Sup3rS3cret", user.RoleStudent, true)
	thabo := env.createUser(t, "Thabo Mokoena", "thabo@test.ls", "Sup3rS3cret", user.RoleLecturer, true)
	neo := env.createUser(t, "Neo Molapo", "neo@test.ls", "Sup3rS3cret", user.RoleLecturer, true)
	prl := env.createUser(t, "Palesa Nthunya", "palesa@test.ls", "Sup3rS3cret", user.RolePRL, true)

	for _, lect := range []user.User{thabo, thabo, neo} {
		rec := env.request(t, http.MethodPost, "/reports", env.tokenFor(t, lect), reportPayload())
		if rec.Code != http.StatusCreated {
			t.Fatalf("seeding report failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	t.Run("lecturer sees only their own", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/reports", env.tokenFor(t, thabo), nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var reports []report.Report
		decodeBody(t, rec, &reports)
		assert.Len(t, reports, 2)
		for _, r := range reports {
			assert.Equal(t, "Thabo Mokoena", r.LecturerName)
		}
	})

	t.Run("prl sees all", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/reports", env.tokenFor(t, prl), nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var reports []report.Report
		decodeBody(t, rec, &reports)
		assert.Len(t, reports, 3)
	})

	t.Run("student cannot view reports", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/reports", env.tokenFor(t, student), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func Test_reportApi_feedback(t *testing.T) {
	env := setup(t)
	lecturer := env.createUser(t, "Thabo Mokoena", "thabo@test.ls", "Sup3rS3cret", user.RoleLecturer, true)
	prl := env.createUser(t, "Palesa Nthunya", "palesa@test.ls", "Sup3rS3cret", user.RolePRL, true)
	pl := env.createUser(t, "Neo Molapo", "neo@test.ls", "Sup3rS3cret", user.RolePL, true)

	rec := env.request(t, http.MethodPost, "/reports", env.tokenFor(t, lecturer), reportPayload())
	var rpt report.Report
	decodeBody(t, rec, &rpt)

	t.Run("prl adds feedback and marks reviewed", func(t *testing.T) {
		rec := env.request(t, http.MethodPut, "/reports/"+rpt.ID+"/feedback", env.tokenFor(t, prl),
			map[string]string{"feedback": "Good coverage; add more examples."})
		assert.Equal(t, http.StatusOK, rec.Code)

		var updated report.Report
		decodeBody(t, rec, &updated)
		assert.Equal(t, "Good coverage; add more examples.", updated.Feedback)
		assert.Equal(t, report.StatusReviewed, updated.Status)
	})

	t.Run("lecturer cannot add feedback", func(t *testing.T) {
		rec := env.request(t, http.MethodPut, "/reports/"+rpt.ID+"/feedback", env.tokenFor(t, lecturer),
			map[string]string{"feedback": "self-review"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("pl cannot add feedback", func(t *testing.T) {
		rec := env.request(t, http.MethodPut, "/reports/"+rpt.ID+"/feedback", env.tokenFor(t, pl),
			map[string]string{"feedback": "nope"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("empty feedback rejected", func(t *testing.T) {
		rec := env.request(t, http.MethodPut, "/reports/"+rpt.ID+"/feedback", env.tokenFor(t, prl),
			map[string]string{"feedback": ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown report", func(t *testing.T) {
		rec := env.request(t, http.MethodPut, "/reports/nope/feedback", env.tokenFor(t, prl),
			map[string]string{"feedback": "x"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lefika/ripota/core/class"
	"github.com/lefika/ripota/core/user"
)

func Test_classApi_roles(t *testing.T) {
	env := setup(t)
	student := env.createUser(t, "Lineo Khumalo", "lineo@test.ls", "Sup3rS3cret", user.RoleStudent, true)
	lecturer := env.createUser(t, "Thabo Mokoena", "thabo@test.ls", "Sup3rS3cret", user.RoleLecturer, true)
	pl := env.createUser(t, "Neo Molapo", "neo@test.ls", "Sup3rS3cret", user.RolePL, true)

	payload := map[string]interface{}{
		"class_name":  "BSCSM Y1 S1",
		"course_name": "Web Design",
		"course_code": "DIWA2110",
		"lecturer":    "Thabo Mokoena",
	}

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		body     interface{}
		wantCode int
	}{
		{name: "list requires auth", method: http.MethodGet, path: "/classes", wantCode: http.StatusUnauthorized},
		{name: "student cannot list", method: http.MethodGet, path: "/classes", token: env.tokenFor(t, student), wantCode: http.StatusForbidden},
		{name: "lecturer can list", method: http.MethodGet, path: "/classes", token: env.tokenFor(t, lecturer), wantCode: http.StatusOK},
		{name: "pl can list", method: http.MethodGet, path: "/classes", token: env.tokenFor(t, pl), wantCode: http.StatusOK},
		{name: "student cannot create", method: http.MethodPost, path: "/classes", token: env.tokenFor(t, student), body: payload, wantCode: http.StatusForbidden},
		{name: "lecturer cannot create", method: http.MethodPost, path: "/classes", token: env.tokenFor(t, lecturer), body: payload, wantCode: http.StatusForbidden},
		{name: "pl can create", method: http.MethodPost, path: "/classes", token: env.tokenFor(t, pl), body: payload, wantCode: http.StatusCreated},
		{name: "lecturer cannot delete", method: http.MethodDelete, path: "/classes/some-id", token: env.tokenFor(t, lecturer), wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.request(t, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func Test_classApi_crud(t *testing.T) {
	env := setup(t)
	prl := env.createUser(t, "Palesa Nthunya", "palesa@test.ls", "Sup3rS3cret", user.RolePRL, true)
	token := env.tokenFor(t, prl)

	var created class.Class

	t.Run("create", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/classes", token, map[string]interface{}{
			"class_name":  "BSCSM Y1 S1",
			"course_name": "Web Design",
			"course_code": "DIWA2110",
			"lecturer":    "Thabo Mokoena",
			"venue":       "Room 101",
			"capacity":    40,
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		decodeBody(t, rec, &created)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "active", created.Status)
		assert.Equal(t, "Palesa Nthunya", created.CreatedBy)
	})

	t.Run("create missing fields", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/classes", token, map[string]interface{}{
			"class_name": "BSCSM Y1 S1",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var fields map[string]string
		decodeBody(t, rec, &fields)
		assert.Contains(t, fields, "course_code")
	})

	t.Run("list", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/classes", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var classes []class.Class
		decodeBody(t, rec, &classes)
		assert.Len(t, classes, 1)
	})

	t.Run("update", func(t *testing.T) {
		rec := env.request(t, http.MethodPut, "/classes/"+created.ID, token, map[string]interface{}{
			"venue":  "Room 202",
			"status": "inactive",
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		var updated class.Class
		decodeBody(t, rec, &updated)
		assert.Equal(t, "Room 202", updated.Venue)
		assert.Equal(t, "inactive", updated.Status)
		// untouched fields survive
		assert.Equal(t, "DIWA2110", updated.CourseCode)
	})

	t.Run("update unknown id", func(t *testing.T) {
		rec := env.request(t, http.MethodPut, "/classes/nope", token, map[string]interface{}{"venue": "X"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := env.request(t, http.MethodDelete, "/classes/"+created.ID, token, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = env.request(t, http.MethodGet, "/classes", token, nil)
		var classes []class.Class
		decodeBody(t, rec, &classes)
		assert.Empty(t, classes)
	})

	t.Run("delete unknown id", func(t *testing.T) {
		rec := env.request(t, http.MethodDelete, "/classes/nope", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

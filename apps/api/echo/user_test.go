package echoapi

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/lefika/ripota/core/user"
)

func Test_userApi_login(t *testing.T) {
	env := setup(t)
	env.createUser(t, "Thabo Mokoena", "thabo@test.ls", "Sup3rS3cret", user.RoleLecturer, true)
	env.createUser(t, "Gone User", "gone@test.ls", "Sup3rS3cret", user.RoleStudent, false)

	t.Run("success returns token and user", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/login", "", map[string]string{
			"email":    "thabo@test.ls",
			"password": "Sup3rS3cret",
		})

		assert.Equal(t, http.StatusOK, rec.Code)

		var body LoginResponse
		decodeBody(t, rec, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "thabo@test.ls", body.User.Email)
		assert.Equal(t, user.RoleLecturer, body.User.Role)

		// claims are verifiable with the signing key
		claims := new(Claims)
		_, err := jwt.ParseWithClaims(body.Token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(env.conf.SecretKey), nil
		})
		assert.NoError(t, err)
		assert.Equal(t, user.RoleLecturer, claims.Role)
		assert.Equal(t, body.User.ID, claims.Subject)
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/login", "", map[string]string{
			"email":    "Thabo@Test.LS",
			"password": "Sup3rS3cret",
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/login", "", map[string]string{
			"email":    "thabo@test.ls",
			"password": "nope",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assertErrorBody(t, rec, "Invalid email or password")
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/login", "", map[string]string{
			"email":    "who@test.ls",
			"password": "Sup3rS3cret",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assertErrorBody(t, rec, "Invalid email or password")
	})

	t.Run("deactivated account", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/login", "", map[string]string{
			"email":    "gone@test.ls",
			"password": "Sup3rS3cret",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assertErrorBody(t, rec, "account deactivated")
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/login", "", map[string]string{"email": "thabo@test.ls"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var fields map[string]string
		decodeBody(t, rec, &fields)
		assert.Contains(t, fields, "password")
	})
}

func Test_userApi_register(t *testing.T) {
	env := setup(t)

	t.Run("success", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/register", "", map[string]interface{}{
			"name":             "Lineo Khumalo",
			"email":            "lineo@test.ls",
			"password":         "Sup3rS3cret",
			"password_confirm": "Sup3rS3cret",
			"role":             user.RoleStudent,
			"faculty":          "FICT",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)

		var usr user.User
		decodeBody(t, rec, &usr)
		assert.Equal(t, "lineo@test.ls", usr.Email)
		assert.Equal(t, user.RoleStudent, usr.Role)
		assert.NotEmpty(t, usr.ID)
		// password hash never leaves the server
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("duplicate email", func(t *testing.T) {
		payload := map[string]interface{}{
			"name":             "Other",
			"email":            "lineo@test.ls",
			"password":         "Sup3rS3cret",
			"password_confirm": "Sup3rS3cret",
			"role":             user.RoleStudent,
		}
		rec := env.request(t, http.MethodPost, "/register", "", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var fields map[string]string
		decodeBody(t, rec, &fields)
		assert.Contains(t, fields, "email")
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/register", "", map[string]interface{}{
			"name":             "Admin Wannabe",
			"email":            "admin@test.ls",
			"password":         "Sup3rS3cret",
			"password_confirm": "Sup3rS3cret",
			"role":             "admin",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var fields map[string]string
		decodeBody(t, rec, &fields)
		assert.Contains(t, fields, "role")
	})

	t.Run("password confirmation mismatch", func(t *testing.T) {
		rec := env.request(t, http.MethodPost, "/register", "", map[string]interface{}{
			"name":             "Mismatch",
			"email":            "mismatch@test.ls",
			"password":         "Sup3rS3cret",
			"password_confirm": "Sup3rS3cret!",
			"role":             user.RoleStudent,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_userApi_profile(t *testing.T) {
	env := setup(t)
	usr := env.createUser(t, "Thabo Mokoena", "thabo@test.ls", "Sup3rS3cret", user.RoleLecturer, true)

	t.Run("requires token", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/profile", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("returns the authenticated user", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/profile", env.tokenFor(t, usr), nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var got user.User
		decodeBody(t, rec, &got)
		assert.Equal(t, usr.ID, got.ID)
		assert.Equal(t, usr.Email, got.Email)
	})
}

func Test_userApi_queryLecturers(t *testing.T) {
	env := setup(t)
	student := env.createUser(t, "Lineo Khumalo", "lineo@test.ls", "Sup3rS3cret", user.RoleStudent, true)
	env.createUser(t, "Thabo Mokoena", "thabo@test.ls", "Sup3rS3cret", user.RoleLecturer, true)
	env.createUser(t, "Neo Molapo", "neo@test.ls", "Sup3rS3cret", user.RoleLecturer, true)

	token := env.tokenFor(t, student)

	t.Run("lecturers endpoint", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/lecturers", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var users []user.User
		decodeBody(t, rec, &users)
		assert.Len(t, users, 2)
		for _, u := range users {
			assert.Equal(t, user.RoleLecturer, u.Role)
		}
	})

	t.Run("users filtered by role", func(t *testing.T) {
		rec := env.request(t, http.MethodGet, "/users?role=lecturer", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var users []user.User
		decodeBody(t, rec, &users)
		assert.Len(t, users, 2)
	})
}

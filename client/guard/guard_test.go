package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lefika/ripota/core/user"
)

type fakeSession struct {
	loading bool
	user    *user.User
}

func (s fakeSession) Loading() bool    { return s.loading }
func (s fakeSession) User() *user.User { return s.user }

func sessionWithRole(role string) fakeSession {
	return fakeSession{user: &user.User{ID: "u1", Name: "Test User", Role: role}}
}

func Test_Evaluate(t *testing.T) {
	tests := []struct {
		name     string
		sess     fakeSession
		required []string
		want     Decision
	}{
		{name: "resolving session loads", sess: fakeSession{loading: true}, want: Loading},
		{
			name: "resolving wins over role check",
			sess: fakeSession{loading: true, user: nil}, required: []string{user.RolePL},
			want: Loading,
		},
		{name: "no user redirects to login", sess: fakeSession{}, want: RedirectLogin},
		{name: "authenticated renders open screen", sess: sessionWithRole(user.RoleStudent), want: Render},
		{
			name: "member renders gated screen",
			sess: sessionWithRole(user.RoleLecturer), required: []string{user.RoleLecturer},
			want: Render,
		},
		{
			name: "role miss redirects home, not login",
			sess: sessionWithRole(user.RoleStudent), required: []string{user.RolePRL},
			want: RedirectHome,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.sess, tt.required))
		})
	}
}

func Test_EvaluatePath(t *testing.T) {
	student := sessionWithRole(user.RoleStudent)
	lecturer := sessionWithRole(user.RoleLecturer)
	prl := sessionWithRole(user.RolePRL)
	pl := sessionWithRole(user.RolePL)

	tests := []struct {
		name string
		sess fakeSession
		path string
		want Decision
	}{
		{name: "dashboard open to all", sess: student, path: "/dashboard", want: Render},
		{name: "report form lecturer only", sess: lecturer, path: "/report", want: Render},
		{name: "report form denies student", sess: student, path: "/report", want: RedirectHome},
		{name: "report form denies prl", sess: prl, path: "/report", want: RedirectHome},
		{name: "reports view admits prl", sess: prl, path: "/reports", want: Render},
		{name: "classes admits pl", sess: pl, path: "/classes", want: Render},
		{name: "classes denies student", sess: student, path: "/classes", want: RedirectHome},
		{name: "monitoring open to all", sess: student, path: "/monitoring", want: Render},
		{name: "rating open to all", sess: student, path: "/rating", want: Render},
		{name: "courses admits prl", sess: prl, path: "/courses", want: Render},
		{name: "courses denies lecturer", sess: lecturer, path: "/courses", want: RedirectHome},
		{name: "unknown path is auth-only", sess: student, path: "/nowhere", want: Render},
		{name: "unknown path still needs auth", sess: fakeSession{}, path: "/nowhere", want: RedirectLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluatePath(tt.sess, tt.path))
		})
	}
}

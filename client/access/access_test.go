package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lefika/ripota/core/user"
)

func Test_Allowed(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		required []string
		want     bool
	}{
		{name: "empty set admits any role", role: user.RoleStudent, required: nil, want: true},
		{name: "empty slice admits any role", role: user.RolePL, required: []string{}, want: true},
		{name: "member allowed", role: user.RolePRL, required: []string{user.RolePRL, user.RolePL}, want: true},
		{name: "non-member denied", role: user.RoleStudent, required: []string{user.RoleLecturer}, want: false},
		{name: "no hierarchy: pl not implied by prl", role: user.RolePL, required: []string{user.RolePRL}, want: false},
		{name: "no hierarchy: prl not implied by pl", role: user.RolePRL, required: []string{user.RolePL}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.required))
			// deterministic
			assert.Equal(t, tt.want, Allowed(tt.role, tt.required))
		})
	}
}

package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_checkAuthorization(t *testing.T) {
	rules := defaultGateRules()

	tests := []struct {
		name    string
		text    string
		role    Role
		blocked bool
		message string
	}{
		{"admin may ask system vocab", "database status", RoleAdmin, false, ""},
		{"student may not", "database status", RoleStudent, true, MsgSystemAccess},
		{"guest results", "my results", RoleGuest, true, MsgSignInRequired},
		{"student results pass the gate", "my results", RoleStudent, false, ""},
		{"faculty marks entry passes", "marks entry", RoleFaculty, false, ""},
		{"student marks entry denied", "marks entry", RoleStudent, true, MsgNeedsFacultyAccess},
		{"cross-cutting beats role rules", "another student's marks entry", RoleStudent, true, MsgOtherStudentData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := checkAuthorization(normalize(tt.text), tt.role, rules)
			assert.Equal(t, tt.blocked, v.blocked)
			if tt.blocked {
				assert.Equal(t, tt.message, v.message)
				assert.Equal(t, CategoryRestrictedTopic, v.category)
			}
		})
	}
}

func Test_GateRule_appliesTo(t *testing.T) {
	all := GateRule{}
	for _, role := range []Role{RoleStudent, RoleFaculty, RoleAdmin, RoleGuest} {
		assert.True(t, all.appliesTo(role))
	}

	scoped := GateRule{Roles: []Role{RoleStudent, RoleGuest}}
	assert.True(t, scoped.appliesTo(RoleStudent))
	assert.True(t, scoped.appliesTo(RoleGuest))
	assert.False(t, scoped.appliesTo(RoleAdmin))
}

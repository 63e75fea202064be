package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRoleNames(t *testing.T) {
	user := User{Roles: []Role{{Name: RoleAdmin}, {Name: RoleUser}}}
	assert.Equal(t, []string{RoleAdmin, RoleUser}, user.RoleNames())

	assert.Empty(t, (&User{}).RoleNames())
}

func TestUserPrimaryRole(t *testing.T) {
	// The first assigned role wins.
	user := User{Roles: []Role{{Name: RoleManager}, {Name: RoleUser}}}
	assert.Equal(t, RoleManager, user.PrimaryRole())

	// A user without roles falls back to the default.
	assert.Equal(t, DefaultRole, (&User{}).PrimaryRole())
}

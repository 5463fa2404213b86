package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveHandle(t *testing.T) {
	assert.Equal(t, "jsmith", DeriveHandle("jsmith@andrew.cmu.edu"))
	assert.Equal(t, "jsmith", DeriveHandle("JSmith@andrew.cmu.edu"))
	assert.Equal(t, "a.b-c", DeriveHandle("A.B-C@campus.edu"))
	assert.Equal(t, "noat", DeriveHandle("NoAt"))
}

func TestRoles(t *testing.T) {
	u := User{Roles: GetDefaultRoles()}

	assert.True(t, u.HasRole(RoleUser))
	assert.False(t, u.HasRole(RoleAdmin))

	u.AddRole(RoleAdmin)
	assert.True(t, u.HasRole(RoleAdmin))

	u.AddRole(RoleAdmin)
	assert.Len(t, u.Roles, 2, "adding an existing role is a no-op")

	u.RemoveRole(RoleAdmin)
	assert.False(t, u.HasRole(RoleAdmin))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleUser))
	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole("superuser"))
}

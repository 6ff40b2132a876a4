package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("João", "joao@example.com", "segredo", RoleAdmin)
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, StatusActive, u.Status)
	assert.True(t, u.IsAdmin())
	assert.True(t, u.IsActive())

	// a senha é armazenada com hash, nunca em claro
	assert.NotEqual(t, "segredo", u.Password)
	assert.True(t, u.CheckPassword("segredo"))
	assert.False(t, u.CheckPassword("errada"))
}

func TestNewUserValidation(t *testing.T) {
	_, err := NewUser("João", "", "segredo", RoleStaff)
	assert.ErrorIs(t, err, ErrEmptyEmail)

	_, err = NewUser("João", "joao@example.com", "abc", RoleStaff)
	assert.ErrorIs(t, err, ErrShortPassword)
}

func TestSetPasswordRotation(t *testing.T) {
	u, err := NewUser("Ana", "ana@example.com", "antiga", RoleStaff)
	require.NoError(t, err)

	require.NoError(t, u.SetPassword("nova-senha"))
	assert.False(t, u.CheckPassword("antiga"))
	assert.True(t, u.CheckPassword("nova-senha"))
}

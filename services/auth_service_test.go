package services_test

import (
	"context"
	"testing"

	"newsroom-cms/models"
	"newsroom-cms/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	res, err := e.auth.Register(ctx, models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password1", Role: "Journalist"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, models.RoleJournalist, res.User.Role)
	assert.NotEqual(t, "password1", res.User.Password)

	login, err := e.auth.Login(ctx, models.LoginRequest{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	actor, err := e.auth.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, actor.UserID)
	assert.Equal(t, models.RoleJournalist, actor.Role)
}

func TestRegister_Defaults(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	res, err := e.auth.Register(ctx, models.RegisterRequest{Username: "bob", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleReader, res.User.Role)

	_, err = e.auth.Register(ctx, models.RegisterRequest{Username: "bob", Password: "password1"})
	var conflict models.ErrorConflict
	assert.ErrorAs(t, err, &conflict)

	_, err = e.auth.Register(ctx, models.RegisterRequest{Username: "carol", Password: "password1", Role: "admin"})
	var validation models.ErrorValidation
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "role", validation.Field)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	testutil.CreateUser(t, e.db, "alice", models.RoleReader)

	for _, req := range []models.LoginRequest{
		{Username: "alice", Password: "wrong"},
		{Username: "nobody", Password: testutil.Password},
	} {
		_, err := e.auth.Login(ctx, req)
		var unauthorized models.ErrorUnauthorized
		require.ErrorAs(t, err, &unauthorized)
		assert.Equal(t, "invalid_credentials", unauthorized.Code)
	}

	_, err := e.auth.Login(ctx, models.LoginRequest{Username: "alice", Password: testutil.Password})
	assert.NoError(t, err)
}

func TestAuthenticate_RoleIsReadFromDatabase(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, e.db, "alice", models.RoleReader)

	login, err := e.auth.Login(ctx, models.LoginRequest{Username: "alice", Password: testutil.Password})
	require.NoError(t, err)

	require.NoError(t, e.users.AssignRole(ctx, user.ID, models.RoleEditor))
	actor, err := e.auth.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, actor.Role)

	_, err = e.auth.Authenticate(ctx, login.Token+"x")
	var unauthorized models.ErrorUnauthorized
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, "invalid_token", unauthorized.Code)
}

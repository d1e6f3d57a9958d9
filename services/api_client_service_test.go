package services_test

import (
	"context"
	"testing"

	"newsroom-cms/models"
	"newsroom-cms/services"
	"newsroom-cms/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAPIKey(t *testing.T) {
	a, err := services.GenerateAPIKey()
	require.NoError(t, err)
	b, err := services.GenerateAPIKey()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Len(t, services.HashAPIKey(a), 64)
	assert.Equal(t, services.HashAPIKey(a), services.HashAPIKey(a))
}

func TestApiClient_CreateStoresOnlyHash(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	reader := testutil.CreateUser(t, e.db, "reader", models.RoleReader)

	created, err := e.clients.Create(ctx, testutil.Actor(reader), models.CreateApiClientRequest{Name: "aggregator"})
	require.NoError(t, err)
	assert.Len(t, created.APIKey, 64)
	assert.Equal(t, created.APIKey[:8], created.Client.KeyPrefix)
	assert.True(t, created.Client.IsActive)

	var stored models.ApiClient
	require.NoError(t, e.db.First(&stored, created.Client.ID).Error)
	assert.Equal(t, services.HashAPIKey(created.APIKey), stored.KeyHash)
	assert.NotContains(t, stored.KeyHash, created.APIKey)

	_, err = e.clients.Create(ctx, testutil.Actor(reader), models.CreateApiClientRequest{Name: "aggregator"})
	var conflict models.ErrorConflict
	assert.ErrorAs(t, err, &conflict)
}

func TestApiClient_OnlyReadersCanCreate(t *testing.T) {
	e := newEnv(t)
	journalist := testutil.CreateUser(t, e.db, "journalist", models.RoleJournalist)

	_, err := e.clients.Create(context.Background(), testutil.Actor(journalist), models.CreateApiClientRequest{Name: "x"})
	var forbidden models.ErrorForbidden
	assert.ErrorAs(t, err, &forbidden)
}

func TestApiClient_Authenticate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	reader := testutil.CreateUser(t, e.db, "reader", models.RoleReader)

	created, err := e.clients.Create(ctx, testutil.Actor(reader), models.CreateApiClientRequest{Name: "aggregator"})
	require.NoError(t, err)

	actor, err := e.clients.Authenticate(ctx, created.APIKey)
	require.NoError(t, err)
	assert.Equal(t, reader.ID, actor.UserID)
	assert.Equal(t, models.RoleReader, actor.Role)
	assert.True(t, actor.ViaAPIClient())

	var stored models.ApiClient
	require.NoError(t, e.db.First(&stored, created.Client.ID).Error)
	assert.NotNil(t, stored.LastUsedAt)

	_, err = e.clients.Authenticate(ctx, "not-a-key")
	var unauthorized models.ErrorUnauthorized
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, models.CodeInvalidAPIKey, unauthorized.Code)

	require.NoError(t, e.clients.Deactivate(ctx, testutil.Actor(reader), created.Client.ID))
	_, err = e.clients.Authenticate(ctx, created.APIKey)
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, models.CodeInvalidAPIKey, unauthorized.Code)
}

func TestApiClient_DeactivateOnlyOwn(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "owner", models.RoleReader)
	other := testutil.CreateUser(t, e.db, "other", models.RoleReader)

	created, err := e.clients.Create(ctx, testutil.Actor(owner), models.CreateApiClientRequest{Name: "mine"})
	require.NoError(t, err)

	err = e.clients.Deactivate(ctx, testutil.Actor(other), created.Client.ID)
	var notFound models.ErrorNotFound
	assert.ErrorAs(t, err, &notFound)

	clients, err := e.clients.List(ctx, testutil.Actor(owner))
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.True(t, clients[0].IsActive)

	clients, err = e.clients.List(ctx, testutil.Actor(other))
	require.NoError(t, err)
	assert.Empty(t, clients)
}

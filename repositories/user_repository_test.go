package repositories_test

import (
	"context"
	"testing"

	"newsroom-cms/models"
	"newsroom-cms/repositories"
	"newsroom-cms/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countRows(t *testing.T, db *gorm.DB, table, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Where(where, args...).Count(&n).Error)
	return n
}

func TestAssignRole_DropsMembershipsOfOldRole(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "sam", models.RoleReader)
	journalist := testutil.CreateUser(t, db, "jo", models.RoleJournalist)
	publisher := testutil.CreatePublisher(t, db, "Gazette")
	testutil.Subscribe(t, db, user, publisher)
	testutil.Follow(t, db, user, journalist)

	require.NoError(t, repo.AssignRole(ctx, user.ID, models.RoleJournalist))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleJournalist, got.Role)
	assert.Equal(t, models.RoleFlags{Journalist: true}, got.RoleFlags())
	assert.Zero(t, countRows(t, db, "publisher_subscribers", "user_id = ?", user.ID))
	assert.Zero(t, countRows(t, db, "journalist_followers", "follower_id = ?", user.ID))

	// Leaving journalist drops affiliations and incoming follows.
	testutil.Affiliate(t, db, publisher, journalist)
	reader := testutil.CreateUser(t, db, "rita", models.RoleReader)
	testutil.Follow(t, db, reader, journalist)

	require.NoError(t, repo.AssignRole(ctx, journalist.ID, models.RoleEditor))
	assert.Zero(t, countRows(t, db, "publisher_journalists", "user_id = ?", journalist.ID))
	assert.Zero(t, countRows(t, db, "journalist_followers", "journalist_id = ?", journalist.ID))
}

func TestAssignRole_UnknownUser(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewUserRepository(db)

	err := repo.AssignRole(context.Background(), 999, models.RoleEditor)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubscribePublisher_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	reader := testutil.CreateUser(t, db, "reader", models.RoleReader)
	publisher := testutil.CreatePublisher(t, db, "Gazette")

	require.NoError(t, repo.SubscribePublisher(ctx, reader.ID, publisher.ID))
	require.NoError(t, repo.SubscribePublisher(ctx, reader.ID, publisher.ID))
	assert.Equal(t, int64(1), countRows(t, db, "publisher_subscribers", "user_id = ?", reader.ID))

	publishers, err := repo.SubscribedPublishers(ctx, reader.ID)
	require.NoError(t, err)
	require.Len(t, publishers, 1)
	assert.Equal(t, "Gazette", publishers[0].Name)

	require.NoError(t, repo.UnsubscribePublisher(ctx, reader.ID, publisher.ID))
	assert.Zero(t, countRows(t, db, "publisher_subscribers", "user_id = ?", reader.ID))
}

func TestFollowers_AreDirected(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	reader := testutil.CreateUser(t, db, "reader", models.RoleReader)
	journalist := testutil.CreateUser(t, db, "journalist", models.RoleJournalist)
	require.NoError(t, repo.FollowJournalist(ctx, reader.ID, journalist.ID))

	followers, err := repo.Followers(ctx, journalist.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, reader.ID, followers[0].ID)

	followers, err = repo.Followers(ctx, reader.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)

	followed, err := repo.FollowedJournalists(ctx, reader.ID)
	require.NoError(t, err)
	require.Len(t, followed, 1)
	assert.Equal(t, "journalist", followed[0].Username)
}

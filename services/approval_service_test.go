package services_test

import (
	"context"
	"errors"
	"testing"

	"newsroom-cms/models"
	"newsroom-cms/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishFixture struct {
	editor     *models.User
	journalist *models.User
	publisher  *models.Publisher
	article    *models.Article
}

// newPublishFixture sets up a pending article at a publisher with one
// subscriber, one follower and one reader who is both.
func newPublishFixture(t *testing.T, e *env) publishFixture {
	t.Helper()
	editor := testutil.CreateUser(t, e.db, "editor", models.RoleEditor)
	journalist := testutil.CreateUser(t, e.db, "journalist", models.RoleJournalist)
	publisher := testutil.CreatePublisher(t, e.db, "Gazette", editor)
	testutil.Affiliate(t, e.db, publisher, journalist)

	subscriber := testutil.CreateUser(t, e.db, "subscriber", models.RoleReader)
	follower := testutil.CreateUser(t, e.db, "follower", models.RoleReader)
	both := testutil.CreateUser(t, e.db, "both", models.RoleReader)
	noEmail := testutil.CreateUser(t, e.db, "noemail", models.RoleReader)
	require.NoError(t, e.db.Model(noEmail).Update("email", "").Error)

	testutil.Subscribe(t, e.db, subscriber, publisher)
	testutil.Subscribe(t, e.db, both, publisher)
	testutil.Subscribe(t, e.db, noEmail, publisher)
	testutil.Follow(t, e.db, follower, journalist)
	testutil.Follow(t, e.db, both, journalist)

	article := testutil.CreateArticle(t, e.db, testutil.ArticleOpts{
		Title: "Big News", Author: journalist, Publisher: publisher, Status: models.StatusPending,
	})
	return publishFixture{editor: editor, journalist: journalist, publisher: publisher, article: article}
}

func TestReview_ApprovePublishesAndNotifiesOnce(t *testing.T) {
	e := newEnv(t)
	f := newPublishFixture(t, e)
	ctx := context.Background()

	result, err := e.approval.Review(ctx, testutil.Actor(f.editor), f.article.ID, models.StatusApproved)
	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	assert.Equal(t, models.StatusPublished, result.Article.Status)
	assert.NotNil(t, result.Article.PublishedAt)
	require.NotNil(t, result.Article.ApprovedByID)
	assert.Equal(t, f.editor.ID, *result.Article.ApprovedByID)
	assert.True(t, result.Article.NotificationsSent)

	assert.ElementsMatch(t,
		[]string{"subscriber@example.com", "follower@example.com", "both@example.com"},
		e.mailer.Recipients())
	require.NotEmpty(t, e.mailer.Sent)
	assert.Equal(t, "New Article: Big News", e.mailer.Sent[0].Subject)
	assert.Contains(t, e.mailer.Sent[0].Body, "https://news.example.com/articles/")

	// A second dispatch for the same publish sends nothing.
	assert.Zero(t, e.notifications.ArticlePublished(ctx, f.article.ID))
	assert.Len(t, e.mailer.Sent, 3)
}

func TestReview_TerminalArticleIsWarningNoop(t *testing.T) {
	e := newEnv(t)
	f := newPublishFixture(t, e)
	ctx := context.Background()

	_, err := e.approval.Review(ctx, testutil.Actor(f.editor), f.article.ID, models.StatusPublished)
	require.NoError(t, err)
	sent := len(e.mailer.Sent)

	for _, status := range []models.ArticleStatus{models.StatusApproved, models.StatusRejected, models.StatusPublished} {
		result, err := e.approval.Review(ctx, testutil.Actor(f.editor), f.article.ID, status)
		require.NoError(t, err)
		assert.Contains(t, result.Warning, "already published")
		assert.Equal(t, models.StatusPublished, result.Article.Status)
	}
	assert.Len(t, e.mailer.Sent, sent)

	rejected := testutil.CreateArticle(t, e.db, testutil.ArticleOpts{Title: "Nope", Author: f.journalist, Status: models.StatusRejected})
	result, err := e.approval.Publish(ctx, testutil.Actor(f.editor), rejected.ID)
	require.NoError(t, err)
	assert.Contains(t, result.Warning, "already rejected")
	assert.Equal(t, models.StatusRejected, result.Article.Status)
}

func TestReview_RejectDoesNotNotify(t *testing.T) {
	e := newEnv(t)
	f := newPublishFixture(t, e)

	result, err := e.approval.Review(context.Background(), testutil.Actor(f.editor), f.article.ID, models.StatusRejected)
	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	assert.Equal(t, models.StatusRejected, result.Article.Status)
	assert.Nil(t, result.Article.PublishedAt)
	assert.Empty(t, e.mailer.Sent)
}

func TestReview_ApproveWithoutAutoPublish(t *testing.T) {
	e := newEnv(t, withPublishOnApprove(false))
	f := newPublishFixture(t, e)
	ctx := context.Background()

	result, err := e.approval.Review(ctx, testutil.Actor(f.editor), f.article.ID, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, result.Article.Status)
	assert.Nil(t, result.Article.PublishedAt)
	assert.Empty(t, e.mailer.Sent)

	result, err = e.approval.Publish(ctx, testutil.Actor(f.editor), f.article.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, result.Article.Status)
	assert.Len(t, e.mailer.Sent, 3)
}

func TestReview_RequiresEditor(t *testing.T) {
	e := newEnv(t)
	f := newPublishFixture(t, e)

	_, err := e.approval.Review(context.Background(), testutil.Actor(f.journalist), f.article.ID, models.StatusApproved)
	var forbidden models.ErrorForbidden
	assert.ErrorAs(t, err, &forbidden)

	_, err = e.approval.Review(context.Background(), testutil.Actor(f.editor), 9999, models.StatusApproved)
	var notFound models.ErrorNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestPublish_SystemActorRecordsNoApprover(t *testing.T) {
	e := newEnv(t)
	f := newPublishFixture(t, e)

	result, err := e.approval.Publish(context.Background(), nil, f.article.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, result.Article.Status)
	assert.Nil(t, result.Article.ApprovedByID)
	assert.Nil(t, result.Article.ApprovedAt)
}

func TestPublish_MailFailureIsSwallowed(t *testing.T) {
	e := newEnv(t)
	e.mailer.Fail = errors.New("smtp down")
	f := newPublishFixture(t, e)

	result, err := e.approval.Publish(context.Background(), testutil.Actor(f.editor), f.article.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, result.Article.Status)
	assert.True(t, result.Article.NotificationsSent)
}

func TestPublish_NoTransportStillConsumesGuard(t *testing.T) {
	e := newEnv(t, withoutMailer())
	f := newPublishFixture(t, e)

	result, err := e.approval.Publish(context.Background(), testutil.Actor(f.editor), f.article.ID)
	require.NoError(t, err)
	assert.True(t, result.Article.NotificationsSent)
	assert.Empty(t, e.mailer.Sent)
}

func TestNotifications_IndependentArticleReachesFollowersOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	journalist := testutil.CreateUser(t, e.db, "journalist", models.RoleJournalist)
	follower := testutil.CreateUser(t, e.db, "follower", models.RoleReader)
	testutil.Follow(t, e.db, follower, journalist)
	article := testutil.CreateArticle(t, e.db, testutil.ArticleOpts{Title: "Solo", Author: journalist, Status: models.StatusPublished})

	assert.Equal(t, 1, e.notifications.ArticlePublished(ctx, article.ID))
	assert.Equal(t, []string{"follower@example.com"}, e.mailer.Recipients())
}

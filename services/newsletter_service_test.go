package services_test

import (
	"context"
	"testing"

	"newsroom-cms/models"
	"newsroom-cms/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsletter_DraftVisibility(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	author := testutil.Actor(testutil.CreateUser(t, e.db, "author", models.RoleJournalist))
	colleague := testutil.Actor(testutil.CreateUser(t, e.db, "colleague", models.RoleJournalist))
	editor := testutil.Actor(testutil.CreateUser(t, e.db, "editor", models.RoleEditor))

	draft, err := e.newsletter.Create(ctx, author, models.CreateNewsletterRequest{Title: "Weekly Digest", Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "weekly-digest", draft.Slug)
	assert.Equal(t, models.NewsletterDraft, draft.Status)

	_, err = e.newsletter.Get(ctx, author, draft.ID)
	assert.NoError(t, err)
	_, err = e.newsletter.Get(ctx, editor, draft.ID)
	assert.NoError(t, err)

	var notFound models.ErrorNotFound
	_, err = e.newsletter.Get(ctx, colleague, draft.ID)
	assert.ErrorAs(t, err, &notFound)
	_, err = e.newsletter.Get(ctx, nil, draft.ID)
	assert.ErrorAs(t, err, &notFound)

	listed, total, err := e.newsletter.ListPublished(ctx, models.ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, listed)
}

func TestNewsletter_Publish(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	author := testutil.Actor(testutil.CreateUser(t, e.db, "author", models.RoleJournalist))
	colleague := testutil.Actor(testutil.CreateUser(t, e.db, "colleague", models.RoleJournalist))

	draft, err := e.newsletter.Create(ctx, author, models.CreateNewsletterRequest{Title: "Weekly", Content: "hello"})
	require.NoError(t, err)

	_, err = e.newsletter.Publish(ctx, colleague, draft.ID)
	var forbidden models.ErrorForbidden
	assert.ErrorAs(t, err, &forbidden)

	result, err := e.newsletter.Publish(ctx, author, draft.ID)
	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	assert.Equal(t, models.NewsletterPublished, result.Newsletter.Status)
	assert.NotNil(t, result.Newsletter.PublishedAt)

	result, err = e.newsletter.Publish(ctx, author, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "newsletter is already published", result.Warning)

	got, err := e.newsletter.Get(ctx, nil, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	_, total, err := e.newsletter.ListPublished(ctx, models.ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestNewsletter_PublisherRequiresAffiliation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	journalist := testutil.CreateUser(t, e.db, "journalist", models.RoleJournalist)
	publisher := testutil.CreatePublisher(t, e.db, "Gazette")

	_, err := e.newsletter.Create(ctx, testutil.Actor(journalist), models.CreateNewsletterRequest{Title: "N", Content: "c", PublisherID: &publisher.ID})
	var validation models.ErrorValidation
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "publisher_id", validation.Field)

	testutil.Affiliate(t, e.db, publisher, journalist)
	created, err := e.newsletter.Create(ctx, testutil.Actor(journalist), models.CreateNewsletterRequest{Title: "N", Content: "c", PublisherID: &publisher.ID})
	require.NoError(t, err)
	require.NotNil(t, created.Publisher)
	assert.Equal(t, "Gazette", created.Publisher.Name)
}

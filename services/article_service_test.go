package services_test

import (
	"context"
	"testing"

	"newsroom-cms/models"
	"newsroom-cms/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArticle_GeneratesUniqueSlugs(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	journalist := testutil.Actor(testutil.CreateUser(t, e.db, "journalist", models.RoleJournalist))

	first, err := e.article.CreateArticle(ctx, journalist, models.CreateArticleRequest{Title: "Hello World", Content: "one"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, models.StatusPending, first.Status)
	assert.Equal(t, "journalist", first.Author.Username)

	second, err := e.article.CreateArticle(ctx, journalist, models.CreateArticleRequest{Title: "Hello World", Content: "two", Status: "draft"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-1", second.Slug)
	assert.Equal(t, models.StatusDraft, second.Status)
}

func TestCreateArticle_ExplicitSlug(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	journalist := testutil.Actor(testutil.CreateUser(t, e.db, "journalist", models.RoleJournalist))

	_, err := e.article.CreateArticle(ctx, journalist, models.CreateArticleRequest{Title: "T", Content: "c", Slug: "Not A Slug"})
	var validation models.ErrorValidation
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "slug", validation.Field)

	_, err = e.article.CreateArticle(ctx, journalist, models.CreateArticleRequest{Title: "T", Content: "c", Slug: "custom"})
	require.NoError(t, err)

	_, err = e.article.CreateArticle(ctx, journalist, models.CreateArticleRequest{Title: "T", Content: "c", Slug: "custom"})
	var conflict models.ErrorConflict
	require.ErrorAs(t, err, &conflict)
	assert.False(t, conflict.Retryable)
}

func TestCreateArticle_RequiresJournalistAndAffiliation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	reader := testutil.Actor(testutil.CreateUser(t, e.db, "reader", models.RoleReader))
	_, err := e.article.CreateArticle(ctx, reader, models.CreateArticleRequest{Title: "T", Content: "c"})
	var forbidden models.ErrorForbidden
	assert.ErrorAs(t, err, &forbidden)

	journalistUser := testutil.CreateUser(t, e.db, "journalist", models.RoleJournalist)
	journalist := testutil.Actor(journalistUser)
	publisher := testutil.CreatePublisher(t, e.db, "Gazette")

	_, err = e.article.CreateArticle(ctx, journalist, models.CreateArticleRequest{Title: "T", Content: "c", PublisherID: &publisher.ID})
	var validation models.ErrorValidation
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "publisher_id", validation.Field)

	testutil.Affiliate(t, e.db, publisher, journalistUser)
	article, err := e.article.CreateArticle(ctx, journalist, models.CreateArticleRequest{Title: "T", Content: "c", PublisherID: &publisher.ID})
	require.NoError(t, err)
	require.NotNil(t, article.Publisher)
	assert.Equal(t, "Gazette", article.Publisher.Name)
}

func TestManageArticle_Permissions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, e.db, "author", models.RoleJournalist)
	colleague := testutil.CreateUser(t, e.db, "colleague", models.RoleJournalist)
	editor := testutil.CreateUser(t, e.db, "editor", models.RoleEditor)
	article := testutil.CreateArticle(t, e.db, testutil.ArticleOpts{Title: "Mine", Author: author, Status: models.StatusDraft})

	_, err := e.article.GetManagedArticle(ctx, testutil.Actor(colleague), article.ID)
	var forbidden models.ErrorForbidden
	assert.ErrorAs(t, err, &forbidden)

	title := "Edited by editor"
	updated, err := e.article.UpdateArticle(ctx, testutil.Actor(editor), article.ID, models.UpdateArticleRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, models.StatusDraft, updated.Status)

	require.NoError(t, e.article.DeleteArticle(ctx, testutil.Actor(author), article.ID))
	_, err = e.article.GetManagedArticle(ctx, testutil.Actor(author), article.ID)
	var notFound models.ErrorNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestSubmitArticle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, e.db, "author", models.RoleJournalist)
	draft := testutil.CreateArticle(t, e.db, testutil.ArticleOpts{Title: "Draft", Author: author, Status: models.StatusDraft})

	result, err := e.article.SubmitArticle(ctx, testutil.Actor(author), draft.ID)
	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	assert.Equal(t, models.StatusPending, result.Article.Status)

	result, err = e.article.SubmitArticle(ctx, testutil.Actor(author), draft.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Warning)
}

func TestAddImage_LeadImage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, e.db, "author", models.RoleJournalist)
	article := testutil.CreateArticle(t, e.db, testutil.ArticleOpts{Title: "Pics", Author: author, Status: models.StatusPublished})

	_, err := e.article.AddImage(ctx, testutil.Actor(author), article.ID, models.CreateArticleImageRequest{ImageURL: "a.jpg", IsLead: true})
	require.NoError(t, err)
	second, err := e.article.AddImage(ctx, testutil.Actor(author), article.ID, models.CreateArticleImageRequest{ImageURL: "b.jpg", IsLead: true})
	require.NoError(t, err)

	got, err := e.article.GetPublishedArticle(ctx, article.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LeadImage)
	assert.Equal(t, second.ID, got.LeadImage.ID)

	detail := models.NewArticleDetail(*got, "https://news.example.com/articles/1")
	require.NotNil(t, detail.LeadImage)
	assert.Equal(t, "b.jpg", *detail.LeadImage)
}

func TestGetJournalistArticles(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	journalist := testutil.CreateUser(t, e.db, "jane", models.RoleJournalist)
	require.NoError(t, e.db.Model(journalist).Updates(map[string]any{"first_name": "Jane", "last_name": "Doe"}).Error)
	testutil.CreateUser(t, e.db, "rick", models.RoleReader)
	testutil.CreateArticle(t, e.db, testutil.ArticleOpts{Title: "Out", Author: journalist, Status: models.StatusPublished})
	testutil.CreateArticle(t, e.db, testutil.ArticleOpts{Title: "Hidden", Author: journalist, Status: models.StatusDraft})

	profile, articles, total, err := e.article.GetJournalistArticles(ctx, "jane", models.ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.FullName)
	assert.Nil(t, profile.Bio)
	assert.Equal(t, int64(1), total)
	assert.Len(t, articles, 1)

	_, _, _, err = e.article.GetJournalistArticles(ctx, "rick", models.ListParams{Page: 1, Limit: 10})
	var notFound models.ErrorNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestJournalistDashboard(t *testing.T) {
	e := newEnv(t)
	journalist := testutil.CreateUser(t, e.db, "journalist", models.RoleJournalist)
	for _, status := range []models.ArticleStatus{models.StatusPublished, models.StatusPublished, models.StatusPending, models.StatusDraft} {
		testutil.CreateArticle(t, e.db, testutil.ArticleOpts{Title: "A", Author: journalist, Status: status})
	}

	dashboard, err := e.article.JournalistDashboard(context.Background(), testutil.Actor(journalist))
	require.NoError(t, err)
	assert.Equal(t, int64(2), dashboard.PublishedCount)
	assert.Equal(t, int64(1), dashboard.PendingCount)
	assert.Equal(t, int64(1), dashboard.DraftCount)
	assert.Len(t, dashboard.RecentArticles, 4)
}

package repositories

import (
	"context"
	"time"

	"newsroom-cms/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id uint) (*models.Article, error)
	GetPublishedByID(ctx context.Context, id uint) (*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	ReplaceCategories(ctx context.Context, article *models.Article, categories []models.Category) error
	Delete(ctx context.Context, id uint) error
	UniqueSlug(ctx context.Context, title string) (string, error)

	ListPublished(ctx context.Context, filter PublishedFilter, params models.ListParams) ([]models.Article, int64, error)
	Feed(ctx context.Context, readerID uint, params models.ListParams) ([]models.Article, int64, error)
	FeedArticle(ctx context.Context, readerID, articleID uint) (*models.Article, error)

	SetStatus(ctx context.Context, id uint, status models.ArticleStatus) (bool, error)
	MarkPublished(ctx context.Context, id uint, approverID *uint, at time.Time) (bool, error)
	ClaimNotifications(ctx context.Context, id uint) (bool, error)

	CountByStatus(ctx context.Context, filter OwnerFilter, status models.ArticleStatus) (int64, error)
	Recent(ctx context.Context, filter OwnerFilter, status models.ArticleStatus, limit int) ([]models.Article, error)
}

// PublishedFilter narrows the public listing. Zero values mean no filter.
type PublishedFilter struct {
	PublisherID uint
	AuthorID    uint
}

// OwnerFilter selects articles by author or publisher for dashboards.
type OwnerFilter struct {
	AuthorID    uint
	PublisherID uint
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

const feedOrder = "articles.published_at DESC, articles.created_at DESC, articles.id DESC"

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Omit("Author", "Publisher", "ApprovedBy", "LeadImage", "Images", "Categories.*").Create(article).Error
}

func (r *articleRepository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := r.withRelations(r.db.WithContext(ctx)).First(&article, id).Error
	return &article, err
}

func (r *articleRepository) GetPublishedByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("status = ?", models.StatusPublished).
		First(&article, id).Error
	return &article, err
}

func (r *articleRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").
		Preload("Publisher").
		Preload("ApprovedBy").
		Preload("Categories").
		Preload("LeadImage")
}

// Update saves the editable columns only. Status, timestamps and the
// notification guard change through the dedicated transition methods.
func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Model(&models.Article{ID: article.ID}).
		Select("title", "content", "excerpt", "publisher_id", "lead_image_id", "updated_at").
		Updates(map[string]any{
			"title":         article.Title,
			"content":       article.Content,
			"excerpt":       article.Excerpt,
			"publisher_id":  article.PublisherID,
			"lead_image_id": article.LeadImageID,
			"updated_at":    time.Now(),
		}).Error
}

func (r *articleRepository) ReplaceCategories(ctx context.Context, article *models.Article, categories []models.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM article_categories WHERE article_id = ?", article.ID).Error; err != nil {
			return err
		}
		for _, category := range categories {
			row := map[string]any{"article_id": article.ID, "category_id": category.ID}
			if err := tx.Table("article_categories").Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Article{}, id).Error
}

func (r *articleRepository) UniqueSlug(ctx context.Context, title string) (string, error) {
	return uniqueSlug(ctx, r.db, &models.Article{}, title, "article")
}

func (r *articleRepository) ListPublished(ctx context.Context, filter PublishedFilter, params models.ListParams) ([]models.Article, int64, error) {
	scope := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Article{}).Where("articles.status = ?", models.StatusPublished)
		if filter.PublisherID > 0 {
			q = q.Where("articles.publisher_id = ?", filter.PublisherID)
		}
		if filter.AuthorID > 0 {
			q = q.Where("articles.author_id = ?", filter.AuthorID)
		}
		return q
	}
	return r.page(scope, params)
}

// feedScope is the subscribed-feed predicate as one query: published and
// either from a subscribed publisher or independent by a followed journalist.
func (r *articleRepository) feedScope(ctx context.Context, readerID uint) *gorm.DB {
	db := r.db.WithContext(ctx)
	publishers := db.Table("publisher_subscribers").Select("publisher_id").Where("user_id = ?", readerID)
	journalists := db.Table("journalist_followers").Select("journalist_id").Where("follower_id = ?", readerID)

	return db.Model(&models.Article{}).
		Where("articles.status = ?", models.StatusPublished).
		Where("(articles.publisher_id IN (?) OR (articles.publisher_id IS NULL AND articles.author_id IN (?)))",
			publishers, journalists)
}

func (r *articleRepository) Feed(ctx context.Context, readerID uint, params models.ListParams) ([]models.Article, int64, error) {
	return r.page(func() *gorm.DB { return r.feedScope(ctx, readerID) }, params)
}

func (r *articleRepository) FeedArticle(ctx context.Context, readerID, articleID uint) (*models.Article, error) {
	var article models.Article
	err := r.withRelations(r.feedScope(ctx, readerID)).
		Where("articles.id = ?", articleID).
		First(&article).Error
	return &article, err
}

// page counts and fetches one page. scope is called twice so the count and
// the select never share statement state.
func (r *articleRepository) page(scope func() *gorm.DB, params models.ListParams) ([]models.Article, int64, error) {
	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []models.Article
	err := scope().
		Preload("Author").
		Preload("Publisher").
		Order(feedOrder).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&articles).Error
	return articles, total, err
}

// SetStatus changes the status of a non-terminal article. It reports false
// when the article was already published or rejected.
func (r *articleRepository) SetStatus(ctx context.Context, id uint, status models.ArticleStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Article{}).
		Where("id = ? AND status NOT IN ?", id, []models.ArticleStatus{models.StatusPublished, models.StatusRejected}).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	return res.RowsAffected > 0, res.Error
}

// MarkPublished moves a non-terminal article to published and re-arms the
// notification guard. approverID is recorded only when non-nil.
func (r *articleRepository) MarkPublished(ctx context.Context, id uint, approverID *uint, at time.Time) (bool, error) {
	values := map[string]any{
		"status":             models.StatusPublished,
		"published_at":       at,
		"notifications_sent": false,
		"updated_at":         at,
	}
	if approverID != nil {
		values["approved_by_id"] = *approverID
		values["approved_at"] = at
	}
	res := r.db.WithContext(ctx).Model(&models.Article{}).
		Where("id = ? AND status NOT IN ?", id, []models.ArticleStatus{models.StatusPublished, models.StatusRejected}).
		Updates(values)
	return res.RowsAffected > 0, res.Error
}

// ClaimNotifications flips the guard from false to true. Only the caller
// that gets true may dispatch.
func (r *articleRepository) ClaimNotifications(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Article{}).
		Where("id = ? AND status = ? AND notifications_sent = ?", id, models.StatusPublished, false).
		Update("notifications_sent", true)
	return res.RowsAffected == 1, res.Error
}

func (r *articleRepository) ownerScope(ctx context.Context, filter OwnerFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Article{})
	if filter.AuthorID > 0 {
		q = q.Where("articles.author_id = ?", filter.AuthorID)
	}
	if filter.PublisherID > 0 {
		q = q.Where("articles.publisher_id = ?", filter.PublisherID)
	}
	return q
}

func (r *articleRepository) CountByStatus(ctx context.Context, filter OwnerFilter, status models.ArticleStatus) (int64, error) {
	var count int64
	err := r.ownerScope(ctx, filter).Where("articles.status = ?", status).Count(&count).Error
	return count, err
}

// Recent returns the newest articles for an owner. An empty status means
// every status.
func (r *articleRepository) Recent(ctx context.Context, filter OwnerFilter, status models.ArticleStatus, limit int) ([]models.Article, error) {
	q := r.ownerScope(ctx, filter).Preload("Author").Preload("Publisher")
	if status != "" {
		q = q.Where("articles.status = ?", status)
	}
	order := feedOrder
	if status == models.StatusPending {
		order = "articles.created_at DESC, articles.id DESC"
	}
	var articles []models.Article
	err := q.Order(order).Limit(limit).Find(&articles).Error
	return articles, err
}

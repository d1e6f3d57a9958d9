package models

import "time"

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	Role      string `json:"role" binding:"omitempty,oneof=reader journalist editor Reader Journalist Editor"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name" binding:"omitempty,max=100"`
	LastName     *string `json:"last_name" binding:"omitempty,max=100"`
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profile_image" binding:"omitempty,max=500"`
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type CreateArticleRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=150"`
	Slug        string `json:"slug" binding:"omitempty,max=250"`
	Content     string `json:"content" binding:"required"`
	Excerpt     string `json:"excerpt" binding:"max=400"`
	PublisherID *uint  `json:"publisher_id"`
	CategoryIDs []uint `json:"category_ids"`
	Status      string `json:"status" binding:"omitempty,oneof=draft pending"`
}

type UpdateArticleRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=150"`
	Content     *string `json:"content"`
	Excerpt     *string `json:"excerpt" binding:"omitempty,max=400"`
	PublisherID *uint   `json:"publisher_id"`
	Independent bool    `json:"independent"`
	CategoryIDs []uint  `json:"category_ids"`
}

type ReviewArticleRequest struct {
	Status ArticleStatus `json:"status" binding:"required,oneof=draft pending approved rejected published"`
}

type CreateArticleImageRequest struct {
	ImageURL string `json:"image_url" binding:"required,max=500"`
	Caption  string `json:"caption" binding:"max=255"`
	AltText  string `json:"alt_text" binding:"max=255"`
	IsLead   bool   `json:"is_lead"`
	Order    int    `json:"order" binding:"min=0"`
}

type CreatePublisherRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description"`
	Website     string `json:"website" binding:"omitempty,url"`
}

type AffiliateJournalistRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=80"`
	Description string `json:"description"`
}

type CreateNewsletterRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Slug        string `json:"slug" binding:"omitempty,max=250"`
	Content     string `json:"content" binding:"required"`
	Excerpt     string `json:"excerpt" binding:"max=400"`
	PublisherID *uint  `json:"publisher_id"`
}

type UpdateNewsletterRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content *string `json:"content"`
	Excerpt *string `json:"excerpt" binding:"omitempty,max=400"`
}

type CreateApiClientRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description"`
}

// ApiClientCreated is the only response that ever carries the raw key.
type ApiClientCreated struct {
	Client ApiClient `json:"client"`
	APIKey string    `json:"api_key"`
}

type ListParams struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PublisherRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type AuthorRef struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ArticleSummary struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Excerpt     string        `json:"excerpt"`
	Status      ArticleStatus `json:"status"`
	Publisher   *PublisherRef `json:"publisher"`
	Author      AuthorRef     `json:"author"`
	PublishedAt *time.Time    `json:"published_at"`
	CreatedAt   time.Time     `json:"created_at"`
}

type ArticleDetail struct {
	ArticleSummary
	Content     string     `json:"content"`
	Categories  []Category `json:"categories"`
	LeadImage   *string    `json:"lead_image"`
	AbsoluteURL string     `json:"absolute_url"`
}

func NewArticleSummary(a Article) ArticleSummary {
	s := ArticleSummary{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Excerpt:     a.Excerpt,
		Status:      a.Status,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		Author: AuthorRef{
			ID:        a.Author.ID,
			Username:  a.Author.Username,
			FirstName: a.Author.FirstName,
			LastName:  a.Author.LastName,
		},
	}
	if a.Publisher != nil {
		s.Publisher = &PublisherRef{ID: a.Publisher.ID, Name: a.Publisher.Name}
	}
	return s
}

func NewArticleSummaries(articles []Article) []ArticleSummary {
	out := make([]ArticleSummary, 0, len(articles))
	for _, a := range articles {
		out = append(out, NewArticleSummary(a))
	}
	return out
}

func NewArticleDetail(a Article, absoluteURL string) ArticleDetail {
	d := ArticleDetail{
		ArticleSummary: NewArticleSummary(a),
		Content:        a.Content,
		Categories:     a.Categories,
		AbsoluteURL:    absoluteURL,
	}
	if d.Categories == nil {
		d.Categories = []Category{}
	}
	if a.LeadImage != nil {
		d.LeadImage = &a.LeadImage.ImageURL
	}
	return d
}

// JournalistProfile is the public view of a journalist.
type JournalistProfile struct {
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Bio      *string `json:"bio"`
}

type SubscriptionsResponse struct {
	Publishers  []Publisher `json:"publishers"`
	Journalists []User      `json:"journalists"`
}

type ReaderDashboard struct {
	SubscriptionsResponse
	RecentFeed []ArticleSummary `json:"recent_feed"`
}

type JournalistDashboard struct {
	PublishedCount int64            `json:"published_count"`
	PendingCount   int64            `json:"pending_count"`
	DraftCount     int64            `json:"draft_count"`
	RecentArticles []ArticleSummary `json:"recent_articles"`
}

type PublisherDashboard struct {
	Publisher       Publisher        `json:"publisher"`
	PublishedCount  int64            `json:"published_count"`
	PendingCount    int64            `json:"pending_count"`
	PendingArticles []ArticleSummary `json:"pending_articles"`
	RecentArticles  []ArticleSummary `json:"recent_articles"`
}

// ReviewResult reports the outcome of a review action. Warning is set when
// the action was a no-op because of the article's current state.
type ReviewResult struct {
	Article *Article `json:"article"`
	Warning string   `json:"warning,omitempty"`
}

type NewsletterResult struct {
	Newsletter *Newsletter `json:"newsletter"`
	Warning    string      `json:"warning,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPending   ArticleStatus = "pending"
	StatusApproved  ArticleStatus = "approved"
	StatusRejected  ArticleStatus = "rejected"
	StatusPublished ArticleStatus = "published"
)

func (s ArticleStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusPublished:
		return true
	}
	return false
}

// Terminal statuses accept no further review action.
func (s ArticleStatus) Terminal() bool {
	return s == StatusPublished || s == StatusRejected
}

type Article struct {
	ID                uint           `json:"id" gorm:"primarykey"`
	Title             string         `json:"title" gorm:"size:150;not null"`
	Slug              string         `json:"slug" gorm:"size:250;uniqueIndex;not null"`
	Content           string         `json:"content" gorm:"type:text"`
	Excerpt           string         `json:"excerpt" gorm:"size:400"`
	PublisherID       *uint          `json:"publisher_id" gorm:"index"`
	Publisher         *Publisher     `json:"publisher,omitempty" gorm:"foreignKey:PublisherID"`
	AuthorID          uint           `json:"author_id" gorm:"not null;index"`
	Author            User           `json:"author" gorm:"foreignKey:AuthorID"`
	Status            ArticleStatus  `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	PublishedAt       *time.Time     `json:"published_at" gorm:"index"`
	ApprovedByID      *uint          `json:"approved_by_id"`
	ApprovedBy        *User          `json:"approved_by,omitempty" gorm:"foreignKey:ApprovedByID"`
	ApprovedAt        *time.Time     `json:"approved_at"`
	NotificationsSent bool           `json:"notifications_sent" gorm:"not null;default:false"`
	Categories        []Category     `json:"categories,omitempty" gorm:"many2many:article_categories;"`
	LeadImageID       *uint          `json:"lead_image_id"`
	LeadImage         *ArticleImage  `json:"lead_image,omitempty" gorm:"foreignKey:LeadImageID"`
	Images            []ArticleImage `json:"images,omitempty" gorm:"foreignKey:ArticleID"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

// IsIndependent reports whether the article has no publisher.
func (a Article) IsIndependent() bool {
	return a.PublisherID == nil
}

type ArticleImage struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ArticleID uint      `json:"article_id" gorm:"not null;index"`
	ImageURL  string    `json:"image_url" gorm:"not null"`
	Caption   string    `json:"caption" gorm:"size:255"`
	AltText   string    `json:"alt_text" gorm:"size:255"`
	IsLead    bool      `json:"is_lead"`
	Order     int       `json:"order" gorm:"column:sort_order;default:0"`
	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Name        string    `json:"name" gorm:"size:80;uniqueIndex;not null"`
	Slug        string    `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

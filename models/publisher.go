package models

import "time"

type Publisher struct {
	ID                uint      `json:"id" gorm:"primarykey"`
	Name              string    `json:"name" gorm:"size:200;uniqueIndex;not null"`
	Description       string    `json:"description" gorm:"type:text"`
	Website           string    `json:"website"`
	CreatedAt         time.Time `json:"created_at"`
	Editors           []User    `json:"editors,omitempty" gorm:"many2many:publisher_editors;"`
	Journalists       []User    `json:"journalists,omitempty" gorm:"many2many:publisher_journalists;"`
	SubscribedReaders []User    `json:"-" gorm:"many2many:publisher_subscribers;"`
}

type NewsletterStatus string

const (
	NewsletterDraft     NewsletterStatus = "draft"
	NewsletterPublished NewsletterStatus = "published"
)

type Newsletter struct {
	ID          uint             `json:"id" gorm:"primarykey"`
	Title       string           `json:"title" gorm:"size:200;not null"`
	Slug        string           `json:"slug" gorm:"size:250;uniqueIndex;not null"`
	Content     string           `json:"content" gorm:"type:text"`
	Excerpt     string           `json:"excerpt" gorm:"size:400"`
	AuthorID    uint             `json:"author_id" gorm:"not null;index"`
	Author      User             `json:"author" gorm:"foreignKey:AuthorID"`
	PublisherID *uint            `json:"publisher_id"`
	Publisher   *Publisher       `json:"publisher,omitempty" gorm:"foreignKey:PublisherID"`
	Status      NewsletterStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	PublishedAt *time.Time       `json:"published_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ApiClient is a third-party credential acting on behalf of one reader.
// Only the SHA-256 hash of the key is stored.
type ApiClient struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	Name        string     `json:"name" gorm:"size:200;uniqueIndex;not null"`
	Description string     `json:"description" gorm:"type:text"`
	KeyHash     string     `json:"-" gorm:"size:64;uniqueIndex;not null"`
	KeyPrefix   string     `json:"key_prefix" gorm:"size:16"`
	UserID      uint       `json:"user_id" gorm:"not null;index"`
	User        User       `json:"-" gorm:"foreignKey:UserID"`
	IsActive    bool       `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time  `json:"created_at"`
	LastUsedAt  *time.Time `json:"last_used_at"`
}

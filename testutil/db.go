// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"newsroom-cms/config"
	"newsroom-cms/models"

	"github.com/gosimple/slug"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Password is the plain-text password of every fixture user.
const Password = "secret123"

var (
	hashOnce sync.Once
	hashed   string
)

// NewDB opens a migrated in-memory SQLite database. A single connection
// keeps every query on the same in-memory schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), config.GormConfig(zap.NewNop()))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.AutoMigrate(db))
	return db
}

func passwordHash(t *testing.T) string {
	hashOnce.Do(func() {
		b, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
		require.NoError(t, err)
		hashed = string(b)
	})
	return hashed
}

// CreateUser stores a user with email <username>@example.com.
func CreateUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: passwordHash(t),
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func Actor(user *models.User) *models.Actor {
	return &models.Actor{UserID: user.ID, Username: user.Username, Role: user.Role}
}

// CreatePublisher stores a publisher with the given editors.
func CreatePublisher(t *testing.T, db *gorm.DB, name string, editors ...*models.User) *models.Publisher {
	t.Helper()
	publisher := &models.Publisher{Name: name}
	require.NoError(t, db.Omit("Editors", "Journalists", "SubscribedReaders").Create(publisher).Error)
	for _, editor := range editors {
		link(t, db, "publisher_editors", "publisher_id", "user_id", publisher.ID, editor.ID)
	}
	return publisher
}

func Affiliate(t *testing.T, db *gorm.DB, publisher *models.Publisher, journalist *models.User) {
	t.Helper()
	link(t, db, "publisher_journalists", "publisher_id", "user_id", publisher.ID, journalist.ID)
}

func Subscribe(t *testing.T, db *gorm.DB, reader *models.User, publisher *models.Publisher) {
	t.Helper()
	link(t, db, "publisher_subscribers", "user_id", "publisher_id", reader.ID, publisher.ID)
}

func Follow(t *testing.T, db *gorm.DB, reader, journalist *models.User) {
	t.Helper()
	link(t, db, "journalist_followers", "follower_id", "journalist_id", reader.ID, journalist.ID)
}

func link(t *testing.T, db *gorm.DB, table, leftCol, rightCol string, left, right uint) {
	t.Helper()
	require.NoError(t, db.Table(table).Create(map[string]any{leftCol: left, rightCol: right}).Error)
}

// ArticleOpts describes a fixture article. PublishedAt is only used for
// published articles and defaults to now.
type ArticleOpts struct {
	Title       string
	Author      *models.User
	Publisher   *models.Publisher
	Status      models.ArticleStatus
	PublishedAt time.Time
}

var slugSeq int

func CreateArticle(t *testing.T, db *gorm.DB, opts ArticleOpts) *models.Article {
	t.Helper()
	slugSeq++

	article := &models.Article{
		Title:    opts.Title,
		Slug:     fmt.Sprintf("%s-%d", slug.Make(opts.Title), slugSeq),
		Content:  "body of " + opts.Title,
		AuthorID: opts.Author.ID,
		Status:   opts.Status,
	}
	if article.Status == "" {
		article.Status = models.StatusDraft
	}
	if opts.Publisher != nil {
		article.PublisherID = &opts.Publisher.ID
	}
	if article.Status == models.StatusPublished {
		at := opts.PublishedAt
		if at.IsZero() {
			at = time.Now()
		}
		article.PublishedAt = &at
	}
	require.NoError(t, db.Omit("Author", "Publisher", "ApprovedBy", "LeadImage", "Images", "Categories").Create(article).Error)
	return article
}

// RecordingMailer captures sent mail. Fail makes every send return err.
type RecordingMailer struct {
	mu   sync.Mutex
	Sent []Mail
	Fail error
}

type Mail struct {
	To, Subject, Body string
}

func (m *RecordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.Sent = append(m.Sent, Mail{To: to, Subject: subject, Body: body})
	return nil
}

// Recipients lists the To address of every captured message.
func (m *RecordingMailer) Recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Sent))
	for _, mail := range m.Sent {
		out = append(out, mail.To)
	}
	return out
}

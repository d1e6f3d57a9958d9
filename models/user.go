package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleReader     Role = "reader"
	RoleJournalist Role = "journalist"
	RoleEditor     Role = "editor"
)

// Roles lists every role a user can hold. A user holds exactly one.
var Roles = []Role{RoleReader, RoleJournalist, RoleEditor}

func (r Role) Valid() bool {
	switch r {
	case RoleReader, RoleJournalist, RoleEditor:
		return true
	}
	return false
}

// ParseRole accepts the role name in any case ("Editor", "editor").
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrorValidation{Field: "role", Message: fmt.Sprintf("invalid role %q, choose one of reader, journalist, editor", s)}
	}
	return r, nil
}

// RoleFlags is the boolean view of a user's role.
type RoleFlags struct {
	Reader     bool `json:"reader"`
	Journalist bool `json:"journalist"`
	Editor     bool `json:"editor"`
}

type User struct {
	ID           uint           `json:"id" gorm:"primarykey"`
	Username     string         `json:"username" gorm:"uniqueIndex;not null"`
	Email        string         `json:"email" gorm:"index"`
	Password     string         `json:"-" gorm:"not null"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Role         Role           `json:"role" gorm:"type:varchar(20);not null;default:'reader'"`
	Bio          string         `json:"bio" gorm:"type:text"`
	ProfileImage string         `json:"profile_image"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	SubscribedPublishers []Publisher `json:"subscribed_publishers,omitempty" gorm:"many2many:publisher_subscribers;"`
	FollowedJournalists  []User      `json:"followed_journalists,omitempty" gorm:"many2many:journalist_followers;joinForeignKey:FollowerID;joinReferences:JournalistID"`
}

func (u User) IsReader() bool     { return u.Role == RoleReader }
func (u User) IsJournalist() bool { return u.Role == RoleJournalist }
func (u User) IsEditor() bool     { return u.Role == RoleEditor }

func (u User) RoleFlags() RoleFlags {
	return RoleFlags{
		Reader:     u.IsReader(),
		Journalist: u.IsJournalist(),
		Editor:     u.IsEditor(),
	}
}

// FullName falls back to the username when no name is set.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID      uint
	Username    string
	Role        Role
	APIClientID *uint
}

func (a *Actor) Is(role Role) bool {
	return a != nil && a.Role == role
}

// ViaAPIClient reports whether the actor authenticated with an API key.
func (a *Actor) ViaAPIClient() bool {
	return a != nil && a.APIClientID != nil
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Статусы редакционного процесса.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatus сообщает, входит ли статус в допустимое множество.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Article - статья, присланная автором на модерацию.
// AuthorEmail задаётся при создании и больше не меняется.
type Article struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Publisher     string             `bson:"publisher,omitempty" json:"publisher,omitempty"`
	Tags          []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	IsPremium     bool               `bson:"isPremium" json:"isPremium"`
	AuthorName    string             `bson:"authorName,omitempty" json:"authorName,omitempty"`
	AuthorPhoto   string             `bson:"authorPhoto,omitempty" json:"authorPhoto,omitempty"`
	AuthorEmail   string             `bson:"authorEmail" json:"authorEmail"`
	Status        string             `bson:"status" json:"status"`
	DeclineReason string             `bson:"declineReason,omitempty" json:"declineReason,omitempty"`
	Views         int64              `bson:"views" json:"views"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ArticleInput - поля статьи, которые присылает клиент.
type ArticleInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Publisher   string   `json:"publisher"`
	Tags        []string `json:"tags"`
	IsPremium   bool     `json:"isPremium"`
	AuthorName  string   `json:"authorName"`
	AuthorPhoto string   `json:"authorPhoto"`
	Status      string   `json:"status,omitempty"`
}

// ArticleEdit - частичное редактирование содержимого статьи.
type ArticleEdit struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Publisher   *string   `json:"publisher,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	IsPremium   *bool     `json:"isPremium,omitempty"`
}

// AuthorStats - агрегированная статистика автора.
type AuthorStats struct {
	Total      int   `json:"total"`
	Approved   int   `json:"approved"`
	Pending    int   `json:"pending"`
	Rejected   int   `json:"rejected"`
	TotalViews int64 `json:"totalViews"`
}

// Package models содержит доменные структуры новостной платформы: пользователей,
// статьи, издателей и платёжные квитанции. Структуры хранятся в документном
// хранилище (bson) и отдаются клиентам в JSON.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Роли пользователя.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет учётную запись читателя или администратора.
// Email уникален и служит ключом идентичности.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email            string             `bson:"email" json:"email"`
	Role             string             `bson:"role" json:"role"`
	Name             string             `bson:"name,omitempty" json:"name,omitempty"`
	Bio              string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Photo            string             `bson:"photo,omitempty" json:"photo,omitempty"`
	IsPremium        bool               `bson:"isPremium" json:"isPremium"`
	PremiumTakenAt   *time.Time         `bson:"premiumTakenAt,omitempty" json:"premiumTakenAt,omitempty"`
	PremiumExpiresAt *time.Time         `bson:"premiumExpiresAt,omitempty" json:"premiumExpiresAt,omitempty"`
	CurrentPlan      string             `bson:"currentPlan,omitempty" json:"currentPlan,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	LastLogin        time.Time          `bson:"lastLogin" json:"lastLogin"`
	UpdatedAt        *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// PremiumExpired сообщает, истёк ли премиум-доступ к моменту now.
func (u *User) PremiumExpired(now time.Time) bool {
	return u.IsPremium && u.PremiumExpiresAt != nil && !u.PremiumExpiresAt.After(now)
}

// LoginPayload - данные, с которыми клиент регистрируется при первом входе.
type LoginPayload struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// ProfileUpdate - частичное обновление профиля; nil означает «не менять».
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Bio   *string `json:"bio,omitempty"`
	Photo *string `json:"photo,omitempty"`
}

// PremiumGrant описывает выдачу премиум-доступа после оплаты.
type PremiumGrant struct {
	Email           string  `json:"email" validate:"required,email"`
	DurationMinutes int     `json:"duration" validate:"required,gt=0"`
	Plan            string  `json:"plan"`
	Price           float64 `json:"price" validate:"gte=0"`
	TransactionID   string  `json:"transactionId"`
}

// Profile - публичное представление роли и профиля пользователя.
type Profile struct {
	Email            string     `json:"email"`
	Role             string     `json:"role"`
	Name             string     `json:"name,omitempty"`
	Bio              string     `json:"bio,omitempty"`
	Photo            string     `json:"photo,omitempty"`
	IsPremium        bool       `json:"isPremium"`
	PremiumExpiresAt *time.Time `json:"premiumExpiresAt,omitempty"`
	CurrentPlan      string     `json:"currentPlan,omitempty"`
}

// ProfileOf строит Profile из User.
func ProfileOf(u *User) Profile {
	return Profile{
		Email:            u.Email,
		Role:             u.Role,
		Name:             u.Name,
		Bio:              u.Bio,
		Photo:            u.Photo,
		IsPremium:        u.IsPremium,
		PremiumExpiresAt: u.PremiumExpiresAt,
		CurrentPlan:      u.CurrentPlan,
	}
}

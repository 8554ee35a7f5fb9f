package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Publisher - запись справочника издателей.
type Publisher struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image" json:"image"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// PublisherInput - данные для создания издателя.
type PublisherInput struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image" validate:"required"`
}

// PublisherUpdate - частичное обновление издателя.
type PublisherUpdate struct {
	Name  *string `json:"name,omitempty"`
	Image *string `json:"image,omitempty"`
}

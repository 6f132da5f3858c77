// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Base carries the fields shared by every stored document: identity,
// audit timestamps and the soft-delete flag. Entities embed it.
type Base struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	IsActive  bool               `bson:"is_active" json:"is_active"`
}

// Document gives generic code access to the embedded Base of any entity.
func (b *Base) Document() *Base { return b }

// Document is satisfied by every entity through the embedded Base.
type Document interface {
	Document() *Base
}

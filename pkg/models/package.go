package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Package bundles existing products under a single price. Include holds
// product references; duplicates are removed before the document is written.
type Package struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string               `bson:"name" json:"name"`
	Price     float64              `bson:"price" json:"price"`
	Include   []primitive.ObjectID `bson:"include" json:"include"`
	Image     string               `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}

// DedupeIDs removes duplicate object ids preserving first-occurrence order.
func DedupeIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

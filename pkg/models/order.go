package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProgressPending  = "pending"
	ProgressAccepted = "accepted"
	ProgressDeclined = "declined"
	ProgressDone     = "done"
)

// ValidProgress reports whether p is one of the four order states.
func ValidProgress(p string) bool {
	switch p {
	case ProgressPending, ProgressAccepted, ProgressDeclined, ProgressDone:
		return true
	}
	return false
}

// OrderItem references exactly one of a product or a package.
type OrderItem struct {
	Product  *primitive.ObjectID `bson:"product,omitempty" json:"product,omitempty"`
	Package  *primitive.ObjectID `bson:"package,omitempty" json:"package,omitempty"`
	Quantity int                 `bson:"quantity" json:"quantity"`
}

type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Items       []OrderItem        `bson:"items" json:"items"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	OrderDate   time.Time          `bson:"orderDate" json:"orderDate"`
	Progress    string             `bson:"progress" json:"progress"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	WhereToSend string             `bson:"whereToSend" json:"whereToSend"`
}

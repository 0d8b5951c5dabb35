package domain

import "time"

type Booking struct {
	ID        string     `json:"id" bson:"_id"`
	Name      string     `json:"name" bson:"name"`
	Email     string     `json:"email" bson:"email"`
	Flight    string     `json:"flight" bson:"flight"`
	Seats     []string   `json:"seats" bson:"seats"`
	BillID    string     `json:"billplzId,omitempty" bson:"billplzId,omitempty"`
	PaidAt    *time.Time `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
}

func (b *Booking) IsPaid() bool {
	return b.PaidAt != nil
}

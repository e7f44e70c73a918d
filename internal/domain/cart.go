package domain

import "time"

// Cart is a user's mutable pre-order selection, scoped to at most one machine.
// It is created empty at registration and cleared (not deleted) after checkout.
type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string     `bson:"user_id" json:"user"`
	MachineID string     `bson:"machine_id,omitempty" json:"vendingMachine,omitempty"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"-"`
	UpdatedAt time.Time  `bson:"updated_at" json:"-"`
}

type CartItem struct {
	ItemName string  `bson:"item_name" json:"itemName"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"`
	ImageURL string  `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
}

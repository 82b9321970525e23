package models

import "time"

// Customer is someone who books workers.
type Customer struct {
	ID        string    `bson:"id" json:"id"`
	FullName  string    `bson:"fullName" json:"fullName"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string    `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	Version   int       `bson:"version" json:"version"`
}

type CustomerSignup struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

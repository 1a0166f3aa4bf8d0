package models

import (
	"time"
)

// Field names follow the persisted JSON documents, which predate this
// service and are shared with the storefront frontend.

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// OrderProduct is a denormalized snapshot of a purchased product, so an
// order keeps its name/price/image even after the catalog entry changes
// or disappears.
type OrderProduct struct {
	Product
	Quantity int `json:"quantity"`
}

const OrderStatusCompleted = "completed"

type Order struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	Items        []CartItem     `json:"items"`
	Total        float64        `json:"total"`
	CreatedAt    time.Time      `json:"createdAt"`
	Status       string         `json:"status"`
	CustomerInfo *CustomerInfo  `json:"customerInfo,omitempty"`
	Products     []OrderProduct `json:"products,omitempty"`
}

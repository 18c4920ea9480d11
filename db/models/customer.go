package models

import (
	"time"
)

// Customer : Customer Model
type Customer struct {
	ID          int64     `json:"id" bun:",pk,autoincrement"`
	Name        string    `json:"name" bun:",notnull"`
	CompanyName string    `json:"company_name" bun:",nullzero"`
	Email       string    `json:"email" bun:",notnull"`
	Phone       string    `json:"phone" bun:",nullzero"`
	CreatedAt   time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

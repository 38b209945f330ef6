package domain

import "time"

type Subscriber struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	SubscribedAt time.Time `json:"subscribed_at,omitempty"`
}

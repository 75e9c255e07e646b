package model

import "time"

// Subscriber is a chat identity opted into the daily broadcast.
type Subscriber struct {
	TelegramID   int64
	SubscribedAt time.Time
}

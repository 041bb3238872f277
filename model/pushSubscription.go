package model

import (
	"github.com/SherClockHolmes/webpush-go"
)

// PushSubscription - a stored web-push subscription for a device
type PushSubscription struct {
	ID       int    `json:"id" db:"id"`
	UserID   string `json:"userID" db:"userID"`
	DeviceID string `json:"deviceID" db:"deviceID"`
	Endpoint string `json:"endpoint" db:"endpoint"`
	Auth     string `json:"auth" db:"auth"`
	P256dh   string `json:"p256dh" db:"p256dh"`
}

func (p *PushSubscription) ToWebPush() *webpush.Subscription {
	return &webpush.Subscription{
		Endpoint: p.Endpoint,
		Keys: webpush.Keys{
			Auth:   p.Auth,
			P256dh: p.P256dh,
		},
	}
}

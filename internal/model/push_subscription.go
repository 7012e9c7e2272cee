package model

import "time"

// PushSubscription holds the information for a browser push subscription.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Lockers []WatchedLocker `gorm:"foreignKey:Endpoint;constraint:OnDelete:CASCADE"`
}

// WatchedLocker links a push subscription to one locker the operator wants
// alerts for. Locker identifiers are document keys in the remote store, so
// there is no local foreign key to validate them against.
type WatchedLocker struct {
	Endpoint string `gorm:"primaryKey;size:512"`
	LockerID string `gorm:"primaryKey;size:128"`
}

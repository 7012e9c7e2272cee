package store

import (
	"time"

	"locker-admin-backend/internal/model"
)

// lockerDoc is the wire shape of a document in the lockers collection.
// Field-name translation into the domain type is explicit and fixed:
// "status" becomes the door status and "lockState" the lock state;
// downstream code addresses only the translated names.
type lockerDoc struct {
	ID            string         `bson:"_id"`
	Label         string         `bson:"label"`
	Location      string         `bson:"location"`
	Status        string         `bson:"status"`
	LockState     int            `bson:"lockState"`
	PricePerHour  float64        `bson:"pricePerHour"`
	Size          string         `bson:"size"`
	ReservedUntil model.FlexTime `bson:"reservationUntil"`
	LastUpdated   model.FlexTime `bson:"lastUpdated"`
}

func (d lockerDoc) toDomain() model.Locker {
	status := model.ParseDoorStatus(d.Status)

	var reservedUntil *time.Time
	if t, ok := d.ReservedUntil.Time(); ok {
		reservedUntil = &t
	}

	var lastUpdated time.Time
	if t, ok := d.LastUpdated.Time(); ok {
		lastUpdated = t
	}

	return model.Locker{
		ID:            d.ID,
		Label:         d.Label,
		Location:      d.Location,
		DoorStatus:    status,
		StatusColor:   status.Color(),
		LockState:     d.LockState,
		PricePerHour:  d.PricePerHour,
		Size:          model.SizeClass(d.Size),
		ReservedUntil: reservedUntil,
		LastUpdated:   lastUpdated,
	}
}

// reservationDoc is the wire shape of a document in the reservations
// collection. All instants go through FlexTime so the observed ISO-string
// endAt and the anticipated typed timestamp decode identically.
type reservationDoc struct {
	ID        string         `bson:"_id"`
	LockerID  string         `bson:"lockerId"`
	UserID    string         `bson:"userId"`
	CreatedAt model.FlexTime `bson:"createdAt"`
	StartAt   model.FlexTime `bson:"startAt"`
	EndAt     model.FlexTime `bson:"endAt"`
	Status    string         `bson:"status"`
}

func (d reservationDoc) toDomain() model.Reservation {
	return model.Reservation{
		ID:        d.ID,
		LockerID:  d.LockerID,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt,
		StartAt:   d.StartAt,
		EndAt:     d.EndAt,
		Status:    d.Status,
	}
}

// CreateLockerInput carries the admin form fields for a new locker. Lock
// state and reservation expiry are not part of the input: creation always
// writes a locked, unreserved unit.
type CreateLockerInput struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	Location     string  `json:"location"`
	Status       string  `json:"status"`
	PricePerHour float64 `json:"pricePerHour"`
	Size         string  `json:"size"`
}

package model

// Reservation is one rental period for a locker by a user. Records are
// read-only from the dashboard's perspective; they are created by the
// reservation-issuing client.
type Reservation struct {
	ID        string   `json:"id"`
	LockerID  string   `json:"lockerId"`
	UserID    string   `json:"userId"`
	CreatedAt FlexTime `json:"createdAt"`
	StartAt   FlexTime `json:"startAt"`
	// EndAt has been observed as an ISO string on the wire while a typed
	// timestamp is anticipated; FlexTime absorbs both.
	EndAt  FlexTime `json:"endAt"`
	Status string   `json:"status"`
}

// DurationMinutes returns the reservation length in minutes. The sample
// only qualifies when both ends are parseable and the duration is strictly
// positive.
func (r Reservation) DurationMinutes() (float64, bool) {
	start, ok := r.StartAt.Time()
	if !ok {
		return 0, false
	}
	end, ok := r.EndAt.Time()
	if !ok {
		return 0, false
	}
	d := end.Sub(start)
	if d <= 0 {
		return 0, false
	}
	return d.Minutes(), true
}

package model

import "time"

// SizeClass is the physical size category of a locker.
type SizeClass string

const (
	SizeSmall  SizeClass = "S"
	SizeMedium SizeClass = "M"
	SizeLarge  SizeClass = "L"
)

// DoorStatus is the reed-switch-derived or app-assigned state of a locker
// door. The upstream schema treats it as free text, so unrecognized values
// are carried through verbatim and render with the default color.
type DoorStatus string

const (
	StatusOpen        DoorStatus = "open"
	StatusClosed      DoorStatus = "closed"
	StatusAvailable   DoorStatus = "available"
	StatusReserved    DoorStatus = "reserved"
	StatusOccupied    DoorStatus = "occupied"
	StatusOffline     DoorStatus = "offline"
	StatusMalfunction DoorStatus = "malfunction"
	StatusMaintenance DoorStatus = "maintenance"
	StatusCleaning    DoorStatus = "cleaning"
	StatusUnknown     DoorStatus = "unknown"
)

// statusColors maps each recognized door status to its dashboard color.
var statusColors = map[DoorStatus]string{
	StatusOpen:        "#f59e0b",
	StatusClosed:      "#64748b",
	StatusAvailable:   "#22c55e",
	StatusReserved:    "#3b82f6",
	StatusOccupied:    "#8b5cf6",
	StatusOffline:     "#94a3b8",
	StatusMalfunction: "#ef4444",
	StatusMaintenance: "#eab308",
	StatusCleaning:    "#06b6d4",
}

const defaultStatusColor = "#9ca3af"

// ParseDoorStatus normalizes a wire status string. An empty string becomes
// StatusUnknown; anything else is preserved as-is.
func ParseDoorStatus(s string) DoorStatus {
	if s == "" {
		return StatusUnknown
	}
	return DoorStatus(s)
}

// Known reports whether the status is one of the recognized values.
func (s DoorStatus) Known() bool {
	_, ok := statusColors[s]
	return ok
}

// Color returns the dashboard color for the status, falling back to the
// default for unrecognized values.
func (s DoorStatus) Color() string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return defaultStatusColor
}

// Lock states of the solenoid control bit.
const (
	LockStateLocked   = 0
	LockStateUnlocked = 1
)

// Locker represents one physical rental unit. The authoritative copy lives
// in the document store; instances here are transient snapshot mappings.
type Locker struct {
	ID            string     `json:"id"`
	Label         string     `json:"label"`
	Location      string     `json:"location"`
	DoorStatus    DoorStatus `json:"status"`
	StatusColor   string     `json:"statusColor"`
	LockState     int        `json:"lockState"`
	PricePerHour  float64    `json:"pricePerHour"`
	Size          SizeClass  `json:"size"`
	ReservedUntil *time.Time `json:"reservationUntil"`
	LastUpdated   time.Time  `json:"lastUpdated"`
}

// Reserved reports whether the locker currently carries a reservation
// expiry. Absence of the timestamp means "not reserved".
func (l Locker) Reserved() bool {
	return l.ReservedUntil != nil
}

package entity

import "time"

type RecordAction string

const (
	ActionCreated        RecordAction = "created"
	ActionUpdated        RecordAction = "updated"
	ActionDeleted        RecordAction = "deleted"
	ActionMaintenanceDue RecordAction = "maintenance_due"
)

type RecordEvent struct {
	Kind   Kind         `json:"kind"`
	ID     int64        `json:"id"`
	Action RecordAction `json:"action"`
	At     time.Time    `json:"at"`
}

type DashboardStats struct {
	Totals   map[Kind]int            `json:"totals"`
	ByStatus map[Kind]map[string]int `json:"byStatus"`
}

// MaintenanceDue is a piece of equipment or a vehicle past its planned maintenance date.
type MaintenanceDue struct {
	Kind Kind
	ID   int64
	Name string
	Due  time.Time
}

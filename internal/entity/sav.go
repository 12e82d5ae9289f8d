package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

var Priorities = []string{
	string(PriorityLow),
	string(PriorityMedium),
	string(PriorityHigh),
	string(PriorityUrgent),
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

type ServiceRequestStatus string

const (
	RequestPending   ServiceRequestStatus = "PENDING"
	RequestValidated ServiceRequestStatus = "VALIDATED"
)

var ServiceRequestStatuses = []string{
	string(RequestPending),
	string(RequestValidated),
}

func (s ServiceRequestStatus) IsValid() bool {
	return s == RequestPending || s == RequestValidated
}

// ValidationAction is the follow-up chosen when a service request is validated.
type ValidationAction string

const (
	ActionDiagnostic     ValidationAction = "DIAGNOSTIC"
	ActionInternalRepair ValidationAction = "INTERNAL_REPAIR"
	ActionRMA            ValidationAction = "RMA"
	ActionScrap          ValidationAction = "SCRAP"
)

func (a ValidationAction) IsValid() bool {
	switch a {
	case ActionDiagnostic, ActionInternalRepair, ActionRMA, ActionScrap:
		return true
	default:
		return false
	}
}

type ServiceRequest struct {
	ID               int64                `json:"id"`
	RequestNumber    string               `json:"requestNumber"`
	Title            string               `json:"title"`
	Description      *string              `json:"description,omitempty"`
	Status           ServiceRequestStatus `json:"status"`
	Priority         Priority             `json:"priority"`
	RequestDate      time.Time            `json:"requestDate"`
	ClientID         *int64               `json:"clientId,omitempty"`
	EquipmentID      *int64               `json:"equipmentId,omitempty"`
	AssignedTo       *int64               `json:"assignedTo,omitempty"`
	ValidationAction *ValidationAction    `json:"validationAction,omitempty"`
	RelatedRepairID  *int64               `json:"relatedRepairId,omitempty"`
	RelatedRMAID     *int64               `json:"relatedRmaId,omitempty"`
}

func (r ServiceRequest) RecordID() int64 { return r.ID }

func (r ServiceRequest) DisplayTitle() string { return r.RequestNumber + " " + r.Title }

type RepairStatus string

const (
	RepairPending      RepairStatus = "PENDING"
	RepairDiagnostic   RepairStatus = "DIAGNOSTIC"
	RepairInProgress   RepairStatus = "IN_PROGRESS"
	RepairWaitingParts RepairStatus = "WAITING_PARTS"
	RepairCompleted    RepairStatus = "COMPLETED"
	RepairCancelled    RepairStatus = "CANCELLED"
)

var RepairStatuses = []string{
	string(RepairPending),
	string(RepairDiagnostic),
	string(RepairInProgress),
	string(RepairWaitingParts),
	string(RepairCompleted),
	string(RepairCancelled),
}

func (s RepairStatus) IsValid() bool {
	switch s {
	case RepairPending, RepairDiagnostic, RepairInProgress, RepairWaitingParts, RepairCompleted, RepairCancelled:
		return true
	default:
		return false
	}
}

type Repair struct {
	ID                 int64            `json:"id"`
	RepairNumber       string           `json:"repairNumber"`
	Description        string           `json:"description"`
	Status             RepairStatus     `json:"status"`
	Priority           Priority         `json:"priority"`
	StartDate          *time.Time       `json:"startDate,omitempty"`
	EndDate            *time.Time       `json:"endDate,omitempty"`
	Cost               *decimal.Decimal `json:"cost,omitempty"`
	TechnicianID       *int64           `json:"technicianId,omitempty"`
	EquipmentID        *int64           `json:"equipmentId,omitempty"`
	ProblemDescription *string          `json:"problemDescription,omitempty"`
	ServiceRequestID   *int64           `json:"serviceRequestId,omitempty"`
}

func (r Repair) RecordID() int64 { return r.ID }

func (r Repair) DisplayTitle() string { return r.RepairNumber }

type RMAStatus string

const (
	RMARequested RMAStatus = "REQUESTED"
	RMAApproved  RMAStatus = "APPROVED"
	RMAShipped   RMAStatus = "SHIPPED"
	RMAReceived  RMAStatus = "RECEIVED"
	RMAReturned  RMAStatus = "RETURNED"
	RMARefunded  RMAStatus = "REFUNDED"
	RMARejected  RMAStatus = "REJECTED"
)

var RMAStatuses = []string{
	string(RMARequested),
	string(RMAApproved),
	string(RMAShipped),
	string(RMAReceived),
	string(RMAReturned),
	string(RMARefunded),
	string(RMARejected),
}

func (s RMAStatus) IsValid() bool {
	switch s {
	case RMARequested, RMAApproved, RMAShipped, RMAReceived, RMAReturned, RMARefunded, RMARejected:
		return true
	default:
		return false
	}
}

type RMA struct {
	ID               int64     `json:"id"`
	RMANumber        string    `json:"rmaNumber"`
	Reason           string    `json:"reason"`
	Status           RMAStatus `json:"status"`
	Priority         *Priority `json:"priority,omitempty"`
	RequestDate      time.Time `json:"requestDate"`
	EquipmentID      *int64    `json:"equipmentId,omitempty"`
	ClientID         *int64    `json:"clientId,omitempty"`
	SupplierID       *int64    `json:"supplierId,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	ServiceRequestID *int64    `json:"serviceRequestId,omitempty"`
}

func (r RMA) RecordID() int64 { return r.ID }

func (r RMA) DisplayTitle() string { return r.RMANumber + " " + r.Reason }

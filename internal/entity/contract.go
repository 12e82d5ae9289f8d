package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractType string

const (
	ContractMaintenance ContractType = "MAINTENANCE"
	ContractRental      ContractType = "LOCATION"
	ContractService     ContractType = "SERVICE"
	ContractSupport     ContractType = "SUPPORT"
)

var ContractTypes = []string{
	string(ContractMaintenance),
	string(ContractRental),
	string(ContractService),
	string(ContractSupport),
}

func (t ContractType) IsValid() bool {
	switch t {
	case ContractMaintenance, ContractRental, ContractService, ContractSupport:
		return true
	default:
		return false
	}
}

type ContractStatus string

const (
	ContractDraft      ContractStatus = "DRAFT"
	ContractActive     ContractStatus = "ACTIVE"
	ContractSuspended  ContractStatus = "SUSPENDED"
	ContractExpired    ContractStatus = "EXPIRED"
	ContractTerminated ContractStatus = "TERMINATED"
)

var ContractStatuses = []string{
	string(ContractDraft),
	string(ContractActive),
	string(ContractSuspended),
	string(ContractExpired),
	string(ContractTerminated),
}

func (s ContractStatus) IsValid() bool {
	switch s {
	case ContractDraft, ContractActive, ContractSuspended, ContractExpired, ContractTerminated:
		return true
	default:
		return false
	}
}

type Contract struct {
	ID             int64            `json:"id"`
	ContractNumber string           `json:"contractNumber"`
	ClientID       int64            `json:"clientId"`
	Type           ContractType     `json:"type"`
	Status         ContractStatus   `json:"status"`
	StartDate      time.Time        `json:"startDate"`
	EndDate        *time.Time       `json:"endDate,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Active         bool             `json:"active"`
	CreatedAt      time.Time        `json:"createdAt"`
}

func (c Contract) RecordID() int64 { return c.ID }

func (c Contract) DisplayTitle() string { return c.ContractNumber }

type PersonnelType string

const (
	PersonnelPermanent    PersonnelType = "PERMANENT"
	PersonnelIntermittent PersonnelType = "INTERMITTENT"
	PersonnelFreelance    PersonnelType = "FREELANCE"
)

var PersonnelTypes = []string{
	string(PersonnelPermanent),
	string(PersonnelIntermittent),
	string(PersonnelFreelance),
}

func (t PersonnelType) IsValid() bool {
	switch t {
	case PersonnelPermanent, PersonnelIntermittent, PersonnelFreelance:
		return true
	default:
		return false
	}
}

type Personnel struct {
	ID        int64         `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Email     *string       `json:"email,omitempty"`
	Phone     *string       `json:"phone,omitempty"`
	Type      PersonnelType `json:"type"`
	Position  *string       `json:"position,omitempty"`
	Active    bool          `json:"active"`
	HireDate  *time.Time    `json:"hireDate,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (p Personnel) RecordID() int64 { return p.ID }

func (p Personnel) DisplayTitle() string { return p.FirstName + " " + p.LastName }

type ProjectStatus string

const (
	ProjectDraft      ProjectStatus = "DRAFT"
	ProjectQuote      ProjectStatus = "QUOTE"
	ProjectApproved   ProjectStatus = "APPROVED"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectCancelled  ProjectStatus = "CANCELLED"
)

var ProjectStatuses = []string{
	string(ProjectDraft),
	string(ProjectQuote),
	string(ProjectApproved),
	string(ProjectInProgress),
	string(ProjectCompleted),
	string(ProjectCancelled),
}

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectDraft, ProjectQuote, ProjectApproved, ProjectInProgress, ProjectCompleted, ProjectCancelled:
		return true
	default:
		return false
	}
}

type Project struct {
	ID            int64            `json:"id"`
	ProjectNumber string           `json:"projectNumber"`
	Name          string           `json:"name"`
	ClientID      *int64           `json:"clientId,omitempty"`
	Status        ProjectStatus    `json:"status"`
	StartDate     *time.Time       `json:"startDate,omitempty"`
	EndDate       *time.Time       `json:"endDate,omitempty"`
	Budget        *decimal.Decimal `json:"budget,omitempty"`
	Description   *string          `json:"description,omitempty"`
}

func (p Project) RecordID() int64 { return p.ID }

func (p Project) DisplayTitle() string { return p.ProjectNumber + " " + p.Name }

package entity

import "time"

type ClientType string

const (
	ClientTypeIndividual   ClientType = "PARTICULIER"
	ClientTypeProfessional ClientType = "PROFESSIONNEL"
	ClientTypeCompany      ClientType = "ENTREPRISE"
)

var ClientTypes = []string{
	string(ClientTypeIndividual),
	string(ClientTypeProfessional),
	string(ClientTypeCompany),
}

func (t ClientType) IsValid() bool {
	switch t {
	case ClientTypeIndividual, ClientTypeProfessional, ClientTypeCompany:
		return true
	default:
		return false
	}
}

type Client struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Type       ClientType `json:"type"`
	Email      *string    `json:"email,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	Address    *string    `json:"address,omitempty"`
	City       *string    `json:"city,omitempty"`
	PostalCode *string    `json:"postalCode,omitempty"`
	Country    *string    `json:"country,omitempty"`
	Active     bool       `json:"active"`
	Notes      *string    `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

func (c Client) RecordID() int64 { return c.ID }

func (c Client) DisplayTitle() string { return c.Name }

type Supplier struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Type       *string   `json:"type,omitempty"`
	Contact    *string   `json:"contact,omitempty"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Address    *string   `json:"address,omitempty"`
	City       *string   `json:"city,omitempty"`
	PostalCode *string   `json:"postalCode,omitempty"`
	Country    *string   `json:"country,omitempty"`
	Website    *string   `json:"website,omitempty"`
	Active     bool      `json:"active"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (s Supplier) RecordID() int64 { return s.ID }

func (s Supplier) DisplayTitle() string { return s.Name }

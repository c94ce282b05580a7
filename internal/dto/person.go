package dto

import (
	"github.com/SscSPs/demerit_registry/internal/core/domain"
)

// CreatePersonRequest defines the data needed to register a new person.
type CreatePersonRequest struct {
	PersonID  string `json:"personID" binding:"required,person_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address" binding:"required,vic_address"` // number|street|city|state|country
	Birthdate string `json:"birthdate" binding:"required,dmy_date"`  // DD-MM-YYYY
}

// UpdatePersonRequest carries the full replacement details for a person.
// Every field is sent; unchanged values are repeated.
type UpdatePersonRequest struct {
	PersonID  string `json:"personID" binding:"required,person_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address" binding:"required,vic_address"`
	Birthdate string `json:"birthdate" binding:"required,dmy_date"`
}

// ToPersonUpdate converts the request into the domain update value.
func (r UpdatePersonRequest) ToPersonUpdate() domain.PersonUpdate {
	return domain.PersonUpdate{
		PersonID:  r.PersonID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Address:   r.Address,
		Birthdate: r.Birthdate,
	}
}

// AddDemeritRequest records one offense.
type AddDemeritRequest struct {
	OffenseDate string `json:"offenseDate" binding:"required,dmy_date"`
	Points      int    `json:"points" binding:"required,min=1,max=6"`
}

// PersonResponse defines the data returned for a person.
type PersonResponse struct {
	PersonID  string `json:"personID"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Birthdate string `json:"birthdate"`
	Suspended bool   `json:"suspended"`
}

// OffenseEntry is one date on a ledger.
type OffenseEntry struct {
	Date   string `json:"date"`
	Points int    `json:"points"`
}

// SuspensionResponse reports a person's ledger state.
type SuspensionResponse struct {
	PersonID     string         `json:"personID"`
	Suspended    bool           `json:"suspended"`
	WindowPoints int            `json:"windowPoints"` // worst two-year window
	Threshold    int            `json:"threshold"`
	Age          int            `json:"age"`
	Offenses     []OffenseEntry `json:"offenses"`
}

// OffenseRecordResponse is one stored audit entry.
type OffenseRecordResponse struct {
	PersonID string `json:"personID"`
	Points   int    `json:"points"`
	Date     string `json:"date"`
}

// ListOffensesParams pages the audit trail. A zero Limit returns every entry.
type ListOffensesParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// ListOffensesResponse wraps the audit trail for a person.
type ListOffensesResponse struct {
	Offenses  []OffenseRecordResponse `json:"offenses"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToPersonResponse converts a domain.Person to PersonResponse DTO
func ToPersonResponse(p *domain.Person) PersonResponse {
	return PersonResponse{
		PersonID:  p.PersonID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Address:   p.Address,
		Birthdate: p.Birthdate,
		Suspended: p.IsSuspended(),
	}
}

// ToSuspensionResponse summarises p's ledger. age is taken by the caller at its clock.
func ToSuspensionResponse(p *domain.Person, age int) SuspensionResponse {
	resp := SuspensionResponse{
		PersonID:  p.PersonID,
		Suspended: p.IsSuspended(),
		Threshold: domain.SuspensionThreshold(age),
		Age:       age,
		Offenses:  []OffenseEntry{},
	}
	if p.Offenses == nil {
		return resp
	}
	resp.WindowPoints = p.Offenses.MaxWindowPoints()
	for _, o := range p.Offenses.Entries() {
		resp.Offenses = append(resp.Offenses, OffenseEntry{Date: domain.FormatDate(o.Date), Points: o.Points})
	}
	return resp
}

// ToListOffensesResponse converts one page of stored audit records.
func ToListOffensesResponse(records []domain.OffenseRecord, nextToken *string) ListOffensesResponse {
	out := make([]OffenseRecordResponse, len(records))
	for i, r := range records {
		out[i] = OffenseRecordResponse{PersonID: r.PersonID, Points: r.Points, Date: r.Date}
	}
	return ListOffensesResponse{Offenses: out, NextToken: nextToken}
}

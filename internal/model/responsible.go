package model

import "time"

// Responsible is the person accountable for a reservation.  The SIAP
// code and the CPF identify the person inside the organization and
// must both be unique across the table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – full name of the person.
//  Siap      – institutional SIAP code, unique.
//  CPF       – national registry number, unique.
//  BirthDate – date of birth.
type Responsible struct {
	ID        uint64    `json:"id"`         // responsibles.id
	Name      string    `json:"name"`       // responsibles.name
	Siap      string    `json:"siap"`       // responsibles.siap
	CPF       string    `json:"cpf"`        // responsibles.cpf
	BirthDate time.Time `json:"birth_date"` // responsibles.birth_date
}

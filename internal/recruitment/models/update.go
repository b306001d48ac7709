package models

import "time"

// ContractorUpdate represents the fields that can be updated for a Contractor.
// Pointer types are used to allow partial updates.
type ContractorUpdate struct {
	// ID identifies the contractor to update.
	ID string
	// FirstName is the new first name.
	FirstName *string
	// LastName is the new last name.
	LastName *string
	// HourlyWage is the new wage, rounded to two decimals.
	HourlyWage *float64
}

// JobUpdate represents the fields that can be updated for an open Job.
type JobUpdate struct {
	// ID identifies the job to update.
	ID string
	// Title is the new title.
	Title *string
	// Date is the new scheduled date. The assigned contractor follows it.
	Date *time.Time
	// Cost is the new cost, rounded to two decimals.
	Cost *float64
}

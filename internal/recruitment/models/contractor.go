package models

import (
	"fmt"
	"time"
)

// Contractor is a worker that can be engaged on at most one Job at a time.
type Contractor struct {
	id         string
	firstName  string
	lastName   string
	hourlyWage float64
	// startDate is set while a Job holds this contractor.
	startDate *time.Time
}

// ContractorOption customises NewContractor.
type ContractorOption func(*contractorOptions)

type contractorOptions struct {
	id       *string
	idLength int
}

// WithContractorID supplies an explicit identifier instead of a generated one.
func WithContractorID(id string) ContractorOption {
	return func(o *contractorOptions) {
		o.id = &id
	}
}

// WithContractorIDLength sets the length of a generated identifier.
func WithContractorIDLength(n int) ContractorOption {
	return func(o *contractorOptions) {
		o.idLength = n
	}
}

// NewContractor validates its arguments and returns an available Contractor.
// Names are trimmed; the wage must be strictly positive.
func NewContractor(firstName, lastName string, hourlyWage float64, opts ...ContractorOption) (*Contractor, error) {
	o := contractorOptions{idLength: DefaultIDLength}
	for _, opt := range opts {
		opt(&o)
	}

	var id string
	if o.id != nil {
		id = *o.id
	} else {
		if err := validateIDLength(o.idLength); err != nil {
			return nil, err
		}
		id = NewID(o.idLength)
	}
	id, err := validateString(id, "ID")
	if err != nil {
		return nil, err
	}
	first, err := validateString(firstName, "first name")
	if err != nil {
		return nil, err
	}
	last, err := validateString(lastName, "last name")
	if err != nil {
		return nil, err
	}
	wage, err := validatePositive(hourlyWage, "hourly wage")
	if err != nil {
		return nil, err
	}

	return &Contractor{
		id:         id,
		firstName:  first,
		lastName:   last,
		hourlyWage: wage,
	}, nil
}

func (c *Contractor) ID() string          { return c.id }
func (c *Contractor) FirstName() string   { return c.firstName }
func (c *Contractor) LastName() string    { return c.lastName }
func (c *Contractor) HourlyWage() float64 { return c.hourlyWage }

// FullName is first and last name separated by a single space.
func (c *Contractor) FullName() string {
	return c.firstName + " " + c.lastName
}

// StartDate reports the start date of the current engagement, if any.
func (c *Contractor) StartDate() (time.Time, bool) {
	if c.startDate == nil {
		return time.Time{}, false
	}
	return *c.startDate, true
}

// IsAvailable reports whether the contractor is free to take a job.
func (c *Contractor) IsAvailable() bool {
	return c.startDate == nil
}

func (c *Contractor) SetFirstName(name string) error {
	v, err := validateString(name, "first name")
	if err != nil {
		return err
	}
	c.firstName = v
	return nil
}

func (c *Contractor) SetLastName(name string) error {
	v, err := validateString(name, "last name")
	if err != nil {
		return err
	}
	c.lastName = v
	return nil
}

func (c *Contractor) SetHourlyWage(wage float64) error {
	v, err := validatePositive(wage, "hourly wage")
	if err != nil {
		return err
	}
	c.hourlyWage = v
	return nil
}

// Apply validates every field present in u and then writes them all.
// Nothing is changed when any field is invalid. The wage is rounded to
// two decimals before validation.
func (c *Contractor) Apply(u *ContractorUpdate) error {
	first, last, wage := c.firstName, c.lastName, c.hourlyWage
	var err error
	if u.FirstName != nil {
		if first, err = validateString(*u.FirstName, "first name"); err != nil {
			return err
		}
	}
	if u.LastName != nil {
		if last, err = validateString(*u.LastName, "last name"); err != nil {
			return err
		}
	}
	if u.HourlyWage != nil {
		if wage, err = validatePositive(roundMoney(*u.HourlyWage), "hourly wage"); err != nil {
			return err
		}
	}
	c.firstName, c.lastName, c.hourlyWage = first, last, wage
	return nil
}

// Equal compares full name, availability, start date and wage.
// The ID is not compared: two contractors with distinct IDs and the same
// details are equal.
func (c *Contractor) Equal(other *Contractor) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.FullName() != other.FullName() ||
		c.IsAvailable() != other.IsAvailable() ||
		c.hourlyWage != other.hourlyWage {
		return false
	}
	if c.startDate != nil && !c.startDate.Equal(*other.startDate) {
		return false
	}
	return true
}

// String renders "{id} - {full name}".
func (c *Contractor) String() string {
	return fmt.Sprintf("%s - %s", c.id, c.FullName())
}

func (c *Contractor) engage(date time.Time) {
	c.startDate = &date
}

func (c *Contractor) release() {
	c.startDate = nil
}

// Package events carries registry changes to Kafka as JSON domain events
// and reads them back for consumers.
package events

import (
	"time"

	"github.com/gartstein/recruitment/internal/recruitment/models"
)

type EventType string

const (
	ContractorAdded   EventType = "contractor_added"
	ContractorUpdated EventType = "contractor_updated"
	ContractorRemoved EventType = "contractor_removed"
	JobAdded          EventType = "job_added"
	JobUpdated        EventType = "job_updated"
	JobRemoved        EventType = "job_removed"
	JobAssigned       EventType = "job_assigned"
	JobDeassigned     EventType = "job_deassigned"
	JobCompleted      EventType = "job_completed"
)

// Event is a point-in-time snapshot of the entities touched by one
// registry mutation. It never holds live entity pointers.
type Event struct {
	Type       EventType          `json:"type"`
	OccurredAt time.Time          `json:"occurred_at"`
	Contractor *ContractorPayload `json:"contractor,omitempty"`
	Job        *JobPayload        `json:"job,omitempty"`
}

type ContractorPayload struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	HourlyWage float64    `json:"hourly_wage"`
	StartDate  *time.Time `json:"start_date,omitempty"`
}

type JobPayload struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Date         time.Time        `json:"date"`
	Cost         float64          `json:"cost"`
	Status       models.JobStatus `json:"status"`
	ContractorID string           `json:"contractor_id,omitempty"`
}

var timeNow = time.Now

// NewContractorEvent snapshots c.
func NewContractorEvent(t EventType, c *models.Contractor) Event {
	return Event{Type: t, OccurredAt: timeNow(), Contractor: contractorPayload(c)}
}

// NewJobEvent snapshots j and, when non-nil, the contractor involved.
func NewJobEvent(t EventType, j *models.Job, c *models.Contractor) Event {
	return Event{Type: t, OccurredAt: timeNow(), Job: jobPayload(j), Contractor: contractorPayload(c)}
}

// Key is the Kafka message key: the job ID when present, else the contractor ID.
func (ev Event) Key() string {
	switch {
	case ev.Job != nil:
		return ev.Job.ID
	case ev.Contractor != nil:
		return ev.Contractor.ID
	default:
		return ""
	}
}

func contractorPayload(c *models.Contractor) *ContractorPayload {
	if c == nil {
		return nil
	}
	p := &ContractorPayload{
		ID:         c.ID(),
		FirstName:  c.FirstName(),
		LastName:   c.LastName(),
		HourlyWage: c.HourlyWage(),
	}
	if start, ok := c.StartDate(); ok {
		p.StartDate = &start
	}
	return p
}

func jobPayload(j *models.Job) *JobPayload {
	if j == nil {
		return nil
	}
	return &JobPayload{
		ID:           j.ID(),
		Title:        j.Title(),
		Date:         j.Date(),
		Cost:         j.Cost(),
		Status:       j.Status(),
		ContractorID: j.ContractorID(),
	}
}

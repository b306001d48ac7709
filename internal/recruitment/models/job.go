package models

import (
	"fmt"
	"time"

	e "github.com/gartstein/recruitment/internal/recruitment/errors"
)

// JobStatus is the lifecycle state of a Job.
type JobStatus string

const (
	// StatusOpenUnassigned is an open job with no contractor.
	StatusOpenUnassigned JobStatus = "OPEN_UNASSIGNED"
	// StatusOpenAssigned is an open job holding exactly one contractor.
	StatusOpenAssigned JobStatus = "OPEN_ASSIGNED"
	// StatusCompleted is terminal. A completed job holds no contractor and
	// none of its fields can change.
	StatusCompleted JobStatus = "COMPLETED"
)

// Job is a unit of work with a schedule and a cost that can hold at most
// one Contractor.
type Job struct {
	id         string
	title      string
	date       time.Time
	cost       float64
	status     JobStatus
	contractor *Contractor
}

// JobOption customises NewJob.
type JobOption func(*jobOptions)

type jobOptions struct {
	id         *string
	idLength   int
	contractor *Contractor
}

// WithJobID supplies an explicit identifier instead of a generated one.
func WithJobID(id string) JobOption {
	return func(o *jobOptions) {
		o.id = &id
	}
}

// WithJobIDLength sets the length of a generated identifier.
func WithJobIDLength(n int) JobOption {
	return func(o *jobOptions) {
		o.idLength = n
	}
}

// WithContractor assigns c right after construction. Construction fails
// with ErrConflict when c is already engaged.
func WithContractor(c *Contractor) JobOption {
	return func(o *jobOptions) {
		o.contractor = c
	}
}

// NewJob validates its arguments and returns an open Job. The date must
// fall on a day after today and the cost must be strictly positive.
func NewJob(title string, date time.Time, cost float64, opts ...JobOption) (*Job, error) {
	o := jobOptions{idLength: DefaultIDLength}
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
	t, err := validateString(title, "title")
	if err != nil {
		return nil, err
	}
	d, err := validateDate(date)
	if err != nil {
		return nil, err
	}
	c, err := validatePositive(cost, "cost")
	if err != nil {
		return nil, err
	}

	job := &Job{
		id:     id,
		title:  t,
		date:   d,
		cost:   c,
		status: StatusOpenUnassigned,
	}
	if o.contractor != nil {
		if err := job.AssignContractor(o.contractor); err != nil {
			return nil, err
		}
	}
	return job, nil
}

func (j *Job) ID() string        { return j.id }
func (j *Job) Title() string     { return j.title }
func (j *Job) Date() time.Time   { return j.date }
func (j *Job) Cost() float64     { return j.cost }
func (j *Job) Status() JobStatus { return j.status }

// Completed reports whether the job reached its terminal state.
func (j *Job) Completed() bool {
	return j.status == StatusCompleted
}

// Contractor returns the assigned contractor or nil.
func (j *Job) Contractor() *Contractor {
	return j.contractor
}

// ContractorID returns the ID of the assigned contractor or "".
func (j *Job) ContractorID() string {
	if j.contractor == nil {
		return ""
	}
	return j.contractor.id
}

// AssignContractor makes c the job's contractor and engages it from the
// job's date. A contractor already held by the job is released first.
//
// It fails with ErrIllegalState on a completed job and with ErrConflict
// when c is engaged elsewhere, including on this very job. On failure
// neither contractor is touched.
func (j *Job) AssignContractor(c *Contractor) error {
	if c == nil {
		return fmt.Errorf("%w: contractor is required", e.ErrValidation)
	}
	if j.status == StatusCompleted {
		return fmt.Errorf("%w: cannot assign a contractor to completed job %s", e.ErrIllegalState, j.id)
	}
	if !c.IsAvailable() {
		return fmt.Errorf("%w: %s is already working", e.ErrConflict, c.FullName())
	}

	if j.contractor != nil {
		j.contractor.release()
	}
	c.engage(j.date)
	j.contractor = c
	j.status = StatusOpenAssigned
	return nil
}

// DeassignContractor releases the assigned contractor, if any.
func (j *Job) DeassignContractor() {
	if j.contractor == nil {
		return
	}
	j.contractor.release()
	j.contractor = nil
	j.status = StatusOpenUnassigned
}

// JobDone completes the job, releasing its contractor first. Calling it
// on a completed job does nothing.
func (j *Job) JobDone() {
	if j.status == StatusCompleted {
		return
	}
	j.DeassignContractor()
	j.status = StatusCompleted
}

// SetCompleted is the strict form of JobDone. Completion is monotonic:
// asking to re-open a completed job fails with ErrIllegalState.
func (j *Job) SetCompleted(done bool) error {
	if done {
		j.JobDone()
		return nil
	}
	if j.status == StatusCompleted {
		return fmt.Errorf("%w: cannot re-open completed job %s", e.ErrIllegalState, j.id)
	}
	return nil
}

func (j *Job) SetTitle(title string) error {
	if err := j.checkOpen(); err != nil {
		return err
	}
	v, err := validateString(title, "title")
	if err != nil {
		return err
	}
	j.title = v
	return nil
}

// SetDate moves the job and the start date of its contractor with it.
func (j *Job) SetDate(date time.Time) error {
	if err := j.checkOpen(); err != nil {
		return err
	}
	d, err := validateDate(date)
	if err != nil {
		return err
	}
	j.setDate(d)
	return nil
}

func (j *Job) SetCost(cost float64) error {
	if err := j.checkOpen(); err != nil {
		return err
	}
	v, err := validatePositive(cost, "cost")
	if err != nil {
		return err
	}
	j.cost = v
	return nil
}

// Apply validates every field present in u and then writes them all.
// Nothing is changed when any field is invalid or the job is completed.
func (j *Job) Apply(u *JobUpdate) error {
	if err := j.checkOpen(); err != nil {
		return err
	}
	title, date, cost := j.title, j.date, j.cost
	var err error
	if u.Title != nil {
		if title, err = validateString(*u.Title, "title"); err != nil {
			return err
		}
	}
	if u.Date != nil {
		if date, err = validateDate(*u.Date); err != nil {
			return err
		}
	}
	if u.Cost != nil {
		if cost, err = validatePositive(roundMoney(*u.Cost), "cost"); err != nil {
			return err
		}
	}
	j.title, j.cost = title, cost
	j.setDate(date)
	return nil
}

// Equal compares title, date, cost, assigned contractor and completion.
// The ID is not compared. Contractors are compared by identity.
func (j *Job) Equal(other *Job) bool {
	if j == nil || other == nil {
		return j == other
	}
	return j.title == other.title &&
		j.date.Equal(other.date) &&
		j.cost == other.cost &&
		j.contractor == other.contractor &&
		j.Completed() == other.Completed()
}

// String renders "{id} - {title}".
func (j *Job) String() string {
	return fmt.Sprintf("%s - %s", j.id, j.title)
}

func (j *Job) setDate(d time.Time) {
	j.date = d
	if j.contractor != nil {
		j.contractor.engage(d)
	}
}

func (j *Job) checkOpen() error {
	if j.status == StatusCompleted {
		return fmt.Errorf("%w: job %s is completed", e.ErrIllegalState, j.id)
	}
	return nil
}

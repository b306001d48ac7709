// Package controller implements the recruitment registry: the ordered
// collections of contractors and jobs, the mutations that keep the
// job/contractor assignment consistent, and the derived read-only views.
//
// The registry is not safe for concurrent use. Callers that share one
// across goroutines must serialise access themselves.
package controller

import (
	"fmt"
	"math"

	e "github.com/gartstein/recruitment/internal/recruitment/errors"
	"github.com/gartstein/recruitment/internal/recruitment/events"
	"github.com/gartstein/recruitment/internal/recruitment/models"
	"go.uber.org/zap"
)

type EventProducer interface {
	Produce(event events.Event)
}

// Registry holds all contractors and jobs in insertion order and enforces
// ID uniqueness within each collection.
type Registry struct {
	contractors []*models.Contractor
	jobs        []*models.Job
	producer    EventProducer
	logger      *zap.Logger
}

// NewRegistry constructs an empty Registry that reports every successful
// mutation to producer.
func NewRegistry(producer EventProducer, logger *zap.Logger) *Registry {
	return &Registry{
		producer: producer,
		logger:   logger.Named("registry"),
	}
}

// AddContractor appends c, failing with ErrDuplicateKey when another
// contractor already uses its ID.
func (r *Registry) AddContractor(c *models.Contractor) error {
	if c == nil {
		return fmt.Errorf("%w: contractor is required", e.ErrValidation)
	}
	if r.contractorIndex(c.ID()) >= 0 {
		return fmt.Errorf("%w: %s already exists with ID=%s", e.ErrDuplicateKey, c.FullName(), c.ID())
	}
	r.contractors = append(r.contractors, c)
	r.emit(events.NewContractorEvent(events.ContractorAdded, c))
	r.logger.Info("contractor added", zap.String("contractor_id", c.ID()))
	return nil
}

// RemoveContractor removes c from the registry. An engaged contractor is
// first released from its job, which becomes unassigned. A contractor
// engaged by a job outside the registry cannot be released here and fails
// with ErrConflict.
func (r *Registry) RemoveContractor(c *models.Contractor) error {
	held, idx, err := r.heldContractor(c)
	if err != nil {
		return err
	}
	job := r.JobOf(held)
	if job == nil && !held.IsAvailable() {
		return fmt.Errorf("%w: %s is engaged by a job outside the registry", e.ErrConflict, held.FullName())
	}
	if job != nil {
		job.DeassignContractor()
		r.emit(events.NewJobEvent(events.JobDeassigned, job, held))
		r.logger.Info("job deassigned",
			zap.String("job_id", job.ID()),
			zap.String("contractor_id", held.ID()),
		)
	}
	r.contractors = append(r.contractors[:idx], r.contractors[idx+1:]...)
	r.emit(events.NewContractorEvent(events.ContractorRemoved, held))
	r.logger.Info("contractor removed", zap.String("contractor_id", held.ID()))
	return nil
}

// AddJob appends j, failing with ErrDuplicateKey when another job already
// uses its ID.
func (r *Registry) AddJob(j *models.Job) error {
	if j == nil {
		return fmt.Errorf("%w: job is required", e.ErrValidation)
	}
	if r.jobIndex(j.ID()) >= 0 {
		return fmt.Errorf("%w: %s already exists with ID=%s", e.ErrDuplicateKey, j.Title(), j.ID())
	}
	r.jobs = append(r.jobs, j)
	r.emit(events.NewJobEvent(events.JobAdded, j, j.Contractor()))
	r.logger.Info("job added", zap.String("job_id", j.ID()))
	return nil
}

// RemoveJob removes j whatever its state. An assigned contractor is
// released back to the available pool first.
func (r *Registry) RemoveJob(j *models.Job) error {
	held, idx, err := r.heldJob(j)
	if err != nil {
		return err
	}
	if c := held.Contractor(); c != nil {
		held.DeassignContractor()
		r.emit(events.NewJobEvent(events.JobDeassigned, held, c))
	}
	r.jobs = append(r.jobs[:idx], r.jobs[idx+1:]...)
	r.emit(events.NewJobEvent(events.JobRemoved, held, nil))
	r.logger.Info("job removed", zap.String("job_id", held.ID()))
	return nil
}

// AssignJob assigns c to j. Assigning the contractor the job already holds
// does nothing; every other case goes through Job.AssignContractor and
// returns its error unchanged.
func (r *Registry) AssignJob(j *models.Job, c *models.Contractor) error {
	job, _, err := r.heldJob(j)
	if err != nil {
		return err
	}
	contractor, _, err := r.heldContractor(c)
	if err != nil {
		return err
	}
	if job.Contractor() == contractor {
		return nil
	}

	previous := job.Contractor()
	if err := job.AssignContractor(contractor); err != nil {
		return err
	}
	if previous != nil {
		r.emit(events.NewJobEvent(events.JobDeassigned, job, previous))
	}
	r.emit(events.NewJobEvent(events.JobAssigned, job, contractor))
	r.logger.Info("job assigned",
		zap.String("job_id", job.ID()),
		zap.String("contractor_id", contractor.ID()),
	)
	return nil
}

// DeassignJob releases the contractor held by j, if any.
func (r *Registry) DeassignJob(j *models.Job) error {
	job, _, err := r.heldJob(j)
	if err != nil {
		return err
	}
	c := job.Contractor()
	if c == nil {
		return nil
	}
	job.DeassignContractor()
	r.emit(events.NewJobEvent(events.JobDeassigned, job, c))
	r.logger.Info("job deassigned",
		zap.String("job_id", job.ID()),
		zap.String("contractor_id", c.ID()),
	)
	return nil
}

// CompleteJob marks j completed, freeing its contractor. Completing an
// already completed job does nothing.
func (r *Registry) CompleteJob(j *models.Job) error {
	job, _, err := r.heldJob(j)
	if err != nil {
		return err
	}
	if job.Completed() {
		return nil
	}
	c := job.Contractor()
	job.JobDone()
	r.emit(events.NewJobEvent(events.JobCompleted, job, c))
	r.logger.Info("job completed", zap.String("job_id", job.ID()))
	return nil
}

// UpdateContractor applies a partial update to the contractor with u.ID.
func (r *Registry) UpdateContractor(u *models.ContractorUpdate) (*models.Contractor, error) {
	c, err := r.Contractor(u.ID)
	if err != nil {
		return nil, err
	}
	if err := c.Apply(u); err != nil {
		return nil, err
	}
	r.emit(events.NewContractorEvent(events.ContractorUpdated, c))
	r.logger.Info("contractor updated", zap.String("contractor_id", c.ID()))
	return c, nil
}

// UpdateJob applies a partial update to the open job with u.ID.
func (r *Registry) UpdateJob(u *models.JobUpdate) (*models.Job, error) {
	j, err := r.Job(u.ID)
	if err != nil {
		return nil, err
	}
	if err := j.Apply(u); err != nil {
		return nil, err
	}
	r.emit(events.NewJobEvent(events.JobUpdated, j, j.Contractor()))
	r.logger.Info("job updated", zap.String("job_id", j.ID()))
	return j, nil
}

// Contractor looks a contractor up by ID.
func (r *Registry) Contractor(id string) (*models.Contractor, error) {
	idx := r.contractorIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: contractor %s", e.ErrNotFound, id)
	}
	return r.contractors[idx], nil
}

// Job looks a job up by ID.
func (r *Registry) Job(id string) (*models.Job, error) {
	idx := r.jobIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: job %s", e.ErrNotFound, id)
	}
	return r.jobs[idx], nil
}

// Contractors returns every contractor in insertion order.
func (r *Registry) Contractors() []*models.Contractor {
	return append([]*models.Contractor(nil), r.contractors...)
}

// Jobs returns every job in insertion order.
func (r *Registry) Jobs() []*models.Job {
	return append([]*models.Job(nil), r.jobs...)
}

// JobOf returns the job currently holding c, or nil.
func (r *Registry) JobOf(c *models.Contractor) *models.Job {
	if c == nil {
		return nil
	}
	for _, j := range r.jobs {
		if j.Contractor() == c {
			return j
		}
	}
	return nil
}

func (r *Registry) AvailableContractors() []*models.Contractor {
	return filter(r.contractors, (*models.Contractor).IsAvailable)
}

// UnassignedJobs returns open jobs without a contractor.
func (r *Registry) UnassignedJobs() []*models.Job {
	return filter(r.jobs, func(j *models.Job) bool {
		return j.Status() == models.StatusOpenUnassigned
	})
}

// AssignedJobs returns open jobs holding a contractor.
func (r *Registry) AssignedJobs() []*models.Job {
	return filter(r.jobs, func(j *models.Job) bool {
		return j.Status() == models.StatusOpenAssigned
	})
}

// JobsByCost returns jobs whose cost lies in [minCost, maxCost]. Both
// bounds must be non-negative and ordered; maxCost may be +Inf.
func (r *Registry) JobsByCost(minCost, maxCost float64) ([]*models.Job, error) {
	if math.IsNaN(minCost) || math.IsNaN(maxCost) {
		return nil, fmt.Errorf("%w: cost bounds must be numbers", e.ErrValidation)
	}
	if minCost > maxCost {
		return nil, fmt.Errorf("%w: minimum cost cannot be greater than maximum cost", e.ErrValidation)
	}
	if minCost < 0 || maxCost < 0 {
		return nil, fmt.Errorf("%w: cost bounds cannot be negative", e.ErrValidation)
	}
	return filter(r.jobs, func(j *models.Job) bool {
		return minCost <= j.Cost() && j.Cost() <= maxCost
	}), nil
}

func (r *Registry) heldContractor(c *models.Contractor) (*models.Contractor, int, error) {
	if c == nil {
		return nil, -1, fmt.Errorf("%w: contractor is required", e.ErrValidation)
	}
	idx := r.contractorIndex(c.ID())
	if idx < 0 || r.contractors[idx] != c {
		return nil, -1, fmt.Errorf("%w: contractor %s", e.ErrNotFound, c.ID())
	}
	return c, idx, nil
}

func (r *Registry) heldJob(j *models.Job) (*models.Job, int, error) {
	if j == nil {
		return nil, -1, fmt.Errorf("%w: job is required", e.ErrValidation)
	}
	idx := r.jobIndex(j.ID())
	if idx < 0 || r.jobs[idx] != j {
		return nil, -1, fmt.Errorf("%w: job %s", e.ErrNotFound, j.ID())
	}
	return j, idx, nil
}

func (r *Registry) contractorIndex(id string) int {
	for i, c := range r.contractors {
		if c.ID() == id {
			return i
		}
	}
	return -1
}

func (r *Registry) jobIndex(id string) int {
	for i, j := range r.jobs {
		if j.ID() == id {
			return i
		}
	}
	return -1
}

func (r *Registry) emit(ev events.Event) {
	r.producer.Produce(ev)
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

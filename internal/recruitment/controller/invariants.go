package controller

import (
	"errors"
	"fmt"

	"github.com/gartstein/recruitment/internal/recruitment/models"
)

// CheckInvariants walks the registry and reports every broken assignment
// invariant: a contractor held by more than one job, an engaged contractor
// no job holds, a start date that differs from its job's date, or a
// status that disagrees with the job's contractor.
func (r *Registry) CheckInvariants() error {
	var errs []error
	holders := make(map[*models.Contractor]*models.Job, len(r.jobs))

	for _, j := range r.jobs {
		c := j.Contractor()
		switch j.Status() {
		case models.StatusCompleted, models.StatusOpenUnassigned:
			if c != nil {
				errs = append(errs, fmt.Errorf("job %s is %s but holds contractor %s", j.ID(), j.Status(), c.ID()))
			}
			continue
		case models.StatusOpenAssigned:
			if c == nil {
				errs = append(errs, fmt.Errorf("job %s is assigned but holds no contractor", j.ID()))
				continue
			}
		}
		if other, ok := holders[c]; ok {
			errs = append(errs, fmt.Errorf("contractor %s is held by jobs %s and %s", c.ID(), other.ID(), j.ID()))
		}
		holders[c] = j
		start, ok := c.StartDate()
		if !ok {
			errs = append(errs, fmt.Errorf("contractor %s is held by job %s but marked available", c.ID(), j.ID()))
		} else if !start.Equal(j.Date()) {
			errs = append(errs, fmt.Errorf("contractor %s starts %s but job %s is on %s",
				c.ID(), start.Format("2006-01-02"), j.ID(), j.Date().Format("2006-01-02")))
		}
	}

	for _, c := range r.contractors {
		if _, held := holders[c]; !held && !c.IsAvailable() {
			errs = append(errs, fmt.Errorf("contractor %s is engaged but no job holds it", c.ID()))
		}
	}
	return errors.Join(errs...)
}

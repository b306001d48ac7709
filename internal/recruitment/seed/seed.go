// Package seed builds a registry from a YAML document listing contractors,
// jobs and the assignments between them.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	e "github.com/gartstein/recruitment/internal/recruitment/errors"
	"github.com/gartstein/recruitment/internal/recruitment/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DateLayout is the format of JobEntry.Date.
const DateLayout = "2006-01-02"

//go:embed default.yaml
var defaultDocument []byte

var timeNow = time.Now

type Document struct {
	Contractors []ContractorEntry `yaml:"contractors"`
	Jobs        []JobEntry        `yaml:"jobs"`
}

// ContractorEntry describes one contractor. A blank ID is generated.
type ContractorEntry struct {
	ID         string  `yaml:"id,omitempty"`
	FirstName  string  `yaml:"first_name"`
	LastName   string  `yaml:"last_name"`
	HourlyWage float64 `yaml:"hourly_wage"`
}

// JobEntry describes one job. Exactly one of Date and InDays sets its date;
// InDays counts from today. Contractor, when set, is the ID of a contractor
// to assign.
type JobEntry struct {
	ID         string  `yaml:"id,omitempty"`
	Title      string  `yaml:"title"`
	Date       string  `yaml:"date,omitempty"`
	InDays     *int    `yaml:"in_days,omitempty"`
	Cost       float64 `yaml:"cost"`
	Contractor string  `yaml:"contractor,omitempty"`
	Completed  bool    `yaml:"completed,omitempty"`
}

// Registry is the part of the registry a seed is applied to.
type Registry interface {
	AddContractor(c *models.Contractor) error
	AddJob(j *models.Job) error
	Contractor(id string) (*models.Contractor, error)
	AssignJob(j *models.Job, c *models.Contractor) error
	CompleteJob(j *models.Job) error
}

// Parse decodes a document, rejecting unknown keys. An empty input yields
// an empty document.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("%w: failed to parse seed: %v", e.ErrValidation, err)
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Default returns the built-in demo document: six contractors, six jobs,
// two assignments and one completed job.
func Default() *Document {
	doc, err := Parse(bytes.NewReader(defaultDocument))
	if err != nil {
		panic(err)
	}
	return doc
}

type Seeder struct {
	idLength int
	logger   *zap.Logger
}

// NewSeeder returns a Seeder generating IDs of idLength characters for
// entries without one.
func NewSeeder(idLength int, logger *zap.Logger) *Seeder {
	if idLength <= 0 {
		idLength = models.DefaultIDLength
	}
	return &Seeder{
		idLength: idLength,
		logger:   logger.Named("seed"),
	}
}

// Apply adds every contractor, then every job, then performs assignments
// and completions in document order. It stops at the first failure and
// reports the offending entry; entries applied before it stay applied.
func (s *Seeder) Apply(reg Registry, doc *Document) error {
	for i, entry := range doc.Contractors {
		opts := []models.ContractorOption{models.WithContractorIDLength(s.idLength)}
		if entry.ID != "" {
			opts = append(opts, models.WithContractorID(entry.ID))
		}
		c, err := models.NewContractor(entry.FirstName, entry.LastName, entry.HourlyWage, opts...)
		if err != nil {
			return fmt.Errorf("contractors[%d]: %w", i, err)
		}
		if err := reg.AddContractor(c); err != nil {
			return fmt.Errorf("contractors[%d]: %w", i, err)
		}
	}

	jobs := make([]*models.Job, len(doc.Jobs))
	for i, entry := range doc.Jobs {
		date, err := entry.date()
		if err != nil {
			return fmt.Errorf("jobs[%d]: %w", i, err)
		}
		opts := []models.JobOption{models.WithJobIDLength(s.idLength)}
		if entry.ID != "" {
			opts = append(opts, models.WithJobID(entry.ID))
		}
		j, err := models.NewJob(entry.Title, date, entry.Cost, opts...)
		if err != nil {
			return fmt.Errorf("jobs[%d]: %w", i, err)
		}
		if err := reg.AddJob(j); err != nil {
			return fmt.Errorf("jobs[%d]: %w", i, err)
		}
		jobs[i] = j
	}

	for i, entry := range doc.Jobs {
		if entry.Contractor != "" {
			c, err := reg.Contractor(entry.Contractor)
			if err != nil {
				return fmt.Errorf("jobs[%d]: %w", i, err)
			}
			if err := reg.AssignJob(jobs[i], c); err != nil {
				return fmt.Errorf("jobs[%d]: %w", i, err)
			}
		}
		if entry.Completed {
			if err := reg.CompleteJob(jobs[i]); err != nil {
				return fmt.Errorf("jobs[%d]: %w", i, err)
			}
		}
	}

	s.logger.Info("seed applied",
		zap.Int("contractors", len(doc.Contractors)),
		zap.Int("jobs", len(doc.Jobs)),
	)
	return nil
}

func (j JobEntry) date() (time.Time, error) {
	switch {
	case j.Date != "" && j.InDays != nil:
		return time.Time{}, fmt.Errorf("%w: date and in_days are mutually exclusive", e.ErrValidation)
	case j.Date != "":
		d, err := time.ParseInLocation(DateLayout, j.Date, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: date %q is not %s", e.ErrValidation, j.Date, DateLayout)
		}
		return d, nil
	case j.InDays != nil:
		return timeNow().AddDate(0, 0, *j.InDays), nil
	default:
		return time.Time{}, fmt.Errorf("%w: job date is required", e.ErrValidation)
	}
}

package models

import (
	"math"
	"testing"

	"github.com/gartstein/recruitment/internal/pkg/utils"
	e "github.com/gartstein/recruitment/internal/recruitment/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContractor(t *testing.T) {
	tests := []struct {
		name    string
		first   string
		last    string
		wage    float64
		opts    []ContractorOption
		wantErr error
	}{
		{name: "valid", first: "Terence", last: "Tao", wage: 100},
		{name: "explicit id", first: "Terence", last: "Tao", wage: 100, opts: []ContractorOption{WithContractorID("aaaaa")}},
		{name: "empty first name", first: "", last: "Tao", wage: 100, wantErr: e.ErrValidation},
		{name: "blank first name", first: "  ", last: "Tao", wage: 100, wantErr: e.ErrValidation},
		{name: "empty last name", first: "Terence", last: "", wage: 100, wantErr: e.ErrValidation},
		{name: "blank last name", first: "Terence", last: "  ", wage: 100, wantErr: e.ErrValidation},
		{name: "both blank", first: " ", last: "  ", wage: 100, wantErr: e.ErrValidation},
		{name: "zero wage", first: "Terence", last: "Tao", wage: 0, wantErr: e.ErrValidation},
		{name: "negative wage", first: "Terence", last: "Tao", wage: -1, wantErr: e.ErrValidation},
		{name: "very negative wage", first: "Terence", last: "Tao", wage: -100, wantErr: e.ErrValidation},
		{name: "NaN wage", first: "Terence", last: "Tao", wage: math.NaN(), wantErr: e.ErrValidation},
		{name: "infinite wage", first: "Terence", last: "Tao", wage: math.Inf(1), wantErr: e.ErrValidation},
		{name: "blank id", first: "Terence", last: "Tao", wage: 100, opts: []ContractorOption{WithContractorID("   ")}, wantErr: e.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContractor(tt.first, tt.last, tt.wage, tt.opts...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, c.ID())
			assert.True(t, c.IsAvailable())
			_, ok := c.StartDate()
			assert.False(t, ok)
		})
	}
}

func TestNewContractor_TrimsNamesAndID(t *testing.T) {
	c := mustContractor(t, "  Terence", "Tao    ", 100, WithContractorID(" bbbbb "))

	assert.Equal(t, "Terence", c.FirstName())
	assert.Equal(t, "Tao", c.LastName())
	assert.Equal(t, "Terence Tao", c.FullName())
	assert.Equal(t, "bbbbb", c.ID())
	assert.Equal(t, "bbbbb - Terence Tao", c.String())
}

func TestNewContractor_GeneratedIDLength(t *testing.T) {
	c := mustContractor(t, "Cedric", "Anover", 50)
	assert.Len(t, c.ID(), DefaultIDLength)

	c = mustContractor(t, "Cedric", "Anover", 50, WithContractorIDLength(8))
	assert.Len(t, c.ID(), 8)
}

func TestContractor_Setters(t *testing.T) {
	c := mustContractor(t, "Cedric", "Anover", 50)

	require.NoError(t, c.SetFirstName(" David "))
	require.NoError(t, c.SetLastName("Hilbert"))
	require.NoError(t, c.SetHourlyWage(65))
	assert.Equal(t, "David Hilbert", c.FullName())
	assert.Equal(t, 65.0, c.HourlyWage())

	assert.ErrorIs(t, c.SetFirstName(" "), e.ErrValidation)
	assert.ErrorIs(t, c.SetLastName(""), e.ErrValidation)
	assert.ErrorIs(t, c.SetHourlyWage(0), e.ErrValidation)
	assert.Equal(t, "David Hilbert", c.FullName(), "failed setters must not mutate")
	assert.Equal(t, 65.0, c.HourlyWage())
}

func TestContractor_Apply(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		c := mustContractor(t, "Cedric", "Anover", 50)
		err := c.Apply(&ContractorUpdate{ID: c.ID(), HourlyWage: utils.Ptr(72.456)})
		require.NoError(t, err)
		assert.Equal(t, 72.46, c.HourlyWage())
		assert.Equal(t, "Cedric Anover", c.FullName())
	})

	t.Run("invalid field leaves contractor untouched", func(t *testing.T) {
		c := mustContractor(t, "Cedric", "Anover", 50)
		err := c.Apply(&ContractorUpdate{
			ID:         c.ID(),
			FirstName:  utils.Ptr("Jack"),
			LastName:   utils.Ptr("  "),
			HourlyWage: utils.Ptr(80.0),
		})
		assert.ErrorIs(t, err, e.ErrValidation)
		assert.Equal(t, "Cedric Anover", c.FullName())
		assert.Equal(t, 50.0, c.HourlyWage())
	})

	t.Run("wage rounding to zero is rejected", func(t *testing.T) {
		c := mustContractor(t, "Cedric", "Anover", 50)
		err := c.Apply(&ContractorUpdate{ID: c.ID(), HourlyWage: utils.Ptr(0.004)})
		assert.ErrorIs(t, err, e.ErrValidation)
		assert.Equal(t, 50.0, c.HourlyWage())
	})
}

func TestContractor_Equal(t *testing.T) {
	freezeTime(t)

	a := mustContractor(t, "Cedric", "Anover", 50, WithContractorID("aaaaa"))
	b := mustContractor(t, "Cedric", "Anover", 50, WithContractorID("bbbbb"))
	assert.True(t, a.Equal(b), "ID is not part of equality")
	assert.NotEqual(t, a.ID(), b.ID())

	other := mustContractor(t, "Cedric", "Anover", 51)
	assert.False(t, a.Equal(other))

	job := mustJob(t, "Mathematician", 10, 250000)
	require.NoError(t, job.AssignContractor(a))
	assert.False(t, a.Equal(b), "availability differs")

	job2 := mustJob(t, "Maths Professor", 10, 300000)
	require.NoError(t, job2.AssignContractor(b))
	assert.True(t, a.Equal(b), "same start date")

	require.NoError(t, job2.SetDate(daysFromNow(11)))
	assert.False(t, a.Equal(b), "start dates differ")

	assert.False(t, a.Equal(nil))
	var nilContractor *Contractor
	assert.True(t, nilContractor.Equal(nil))
}

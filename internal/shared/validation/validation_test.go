package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name" validate:"required"`
	Rate  float64 `json:"rate" validate:"gte=0,lte=100"`
	Items []item  `json:"items" validate:"dive"`
}

type item struct {
	Count int `json:"count" validate:"gte=0"`
}

func TestIssuesUseJSONNames(t *testing.T) {
	err := New().Struct(sample{Rate: 120, Items: []item{{Count: -1}}})
	require.Error(t, err)

	issues := Issues(err)
	assert.ElementsMatch(t, []FieldIssue{
		{Field: "name", Issue: "required"},
		{Field: "rate", Issue: "lte=100"},
		{Field: "items[0].count", Issue: "gte=0"},
	}, issues)
}

func TestIssuesIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, Issues(errors.New("boom")))
	assert.Nil(t, Issues(nil))
}

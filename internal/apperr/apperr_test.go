package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad input"), 400},
		{"insufficient stock", InsufficientStock("insufficient stock"), 400},
		{"not found", NotFound("product not found"), 404},
		{"persistence", Persistence(errors.New("disk full")), 500},
		{"unclassified", errors.New("boom"), 500},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestClassificationSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("applying movement: %w", InsufficientStock("insufficient stock"))
	assert.True(t, IsInsufficientStock(err))
	assert.Equal(t, 400, Status(err))
}

func TestPersistenceKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Persistence(cause)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
}

package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromUnwrapsDefinitions(t *testing.T) {
	err := fmt.Errorf("toggle habit %s: %w", "h1", HabitNotFound)

	def := From(err)
	assert.Same(t, HabitNotFound, def)
	assert.Equal(t, http.StatusNotFound, def.Status)
	assert.True(t, errors.Is(err, HabitNotFound))
}

func TestFromKeepsCauseOfPersistenceErrors(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("%w: %w", Persistence, cause)

	assert.Same(t, Persistence, From(err))
	assert.ErrorIs(t, err, cause)
}

func TestFromUnknownIsServerError(t *testing.T) {
	def := From(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, def.Status)
}

func TestLookupCoversAllCodes(t *testing.T) {
	for code, def := range Lookup {
		assert.Equal(t, code, def.Code)
		assert.NotEmpty(t, def.Message)
		assert.NotZero(t, def.Status)
	}
}

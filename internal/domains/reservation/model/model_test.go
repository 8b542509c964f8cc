package model_test

import (
	"testing"

	"tablebook/internal/domains/reservation/model"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]string]bool{
		{model.StatusBooked, model.StatusSeated}:    true,
		{model.StatusBooked, model.StatusCancelled}: true,
		{model.StatusSeated, model.StatusFinished}:  true,
	}

	for _, from := range model.Statuses {
		for _, to := range model.Statuses {
			assert.Equal(t, allowed[[2]string{from, to}], model.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestIsStatus(t *testing.T) {
	for _, status := range model.Statuses {
		assert.True(t, model.IsStatus(status))
	}

	assert.False(t, model.IsStatus("waiting"))
	assert.False(t, model.IsStatus(""))
}

package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerCountsGOPOnWrap(t *testing.T) {
	var tr Tracker
	tr.Observe(0)
	tr.Observe(1)
	tr.Observe(2)
	assert.Equal(t, 0, tr.GOPCount())

	tr.Observe(0) // wrap: new < previous
	assert.Equal(t, 1, tr.GOPCount())

	tr.Observe(1)
	tr.Observe(0)
	assert.Equal(t, 2, tr.GOPCount())
}

func TestTrackerFirstObservationNeverCountsAsGOP(t *testing.T) {
	var tr Tracker
	tr.Observe(0)
	assert.Equal(t, 0, tr.GOPCount())
}

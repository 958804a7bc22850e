package reindex

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker(t *testing.T) {
	t.Run("reports at the configured interval", func(t *testing.T) {
		var out bytes.Buffer
		tracker := NewProgressTracker(&out, 10, 5)
		tracker.Start()

		tracker.Update(3)
		assert.Empty(t, out.String())

		tracker.Update(5)
		assert.Contains(t, out.String(), "5/10 (50.0%)")
	})

	t.Run("finish prints full progress", func(t *testing.T) {
		var out bytes.Buffer
		tracker := NewProgressTracker(&out, 4, 100)
		tracker.Start()
		tracker.Update(2)
		tracker.Finish()

		assert.Contains(t, out.String(), "4/4 (100.0%)")
	})

	t.Run("updates before start are ignored", func(t *testing.T) {
		var out bytes.Buffer
		tracker := NewProgressTracker(&out, 10, 1)
		tracker.Update(5)
		assert.Empty(t, out.String())
		assert.Zero(t, tracker.Elapsed())
	})

	t.Run("progress is capped at total", func(t *testing.T) {
		var out bytes.Buffer
		tracker := NewProgressTracker(&out, 3, 1)
		tracker.Start()
		tracker.Update(7)
		assert.Contains(t, out.String(), "3/3 (100.0%)")
	})
}

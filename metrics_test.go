package seoedit_test

import (
	"testing"

	"github.com/fwojciec/seoedit"
	"github.com/stretchr/testify/assert"
)

func TestComputeMetrics(t *testing.T) {
	t.Parallel()

	t.Run("empty content scores zero", func(t *testing.T) {
		t.Parallel()

		m := seoedit.ComputeMetrics("")

		assert.Equal(t, 0, m.WordCount)
		assert.Zero(t, m.ReadabilityScore)
		assert.Equal(t, seoedit.ReadabilityDifficult, m.ReadabilityLevel)
	})

	t.Run("whitespace only content scores zero", func(t *testing.T) {
		t.Parallel()

		m := seoedit.ComputeMetrics("  \n\t ")

		assert.Equal(t, 0, m.WordCount)
		assert.Zero(t, m.ReadabilityScore)
	})

	t.Run("counts whitespace delimited words", func(t *testing.T) {
		t.Parallel()

		m := seoedit.ComputeMetrics("one two\nthree\tfour   five")

		assert.Equal(t, 5, m.WordCount)
	})

	t.Run("score is sentences per hundred words", func(t *testing.T) {
		t.Parallel()

		// "Hello world." splits into "Hello world" and a trailing empty segment.
		m := seoedit.ComputeMetrics("Hello world.")

		assert.Equal(t, 2, m.WordCount)
		assert.InDelta(t, 100.0, m.ReadabilityScore, 0.0001)
		assert.Equal(t, seoedit.ReadabilityEasy, m.ReadabilityLevel)
	})

	t.Run("runs of terminators count once", func(t *testing.T) {
		t.Parallel()

		m := seoedit.ComputeMetrics("Wait... What?! Yes")

		assert.Equal(t, 3, m.WordCount)
		assert.InDelta(t, 100.0, m.ReadabilityScore, 0.0001)
	})

	t.Run("long sentence is difficult", func(t *testing.T) {
		t.Parallel()

		m := seoedit.ComputeMetrics("a b c d e f g h i j k l m n o p q r s t")

		assert.Equal(t, 20, m.WordCount)
		assert.InDelta(t, 5.0, m.ReadabilityScore, 0.0001)
		assert.Equal(t, seoedit.ReadabilityDifficult, m.ReadabilityLevel)
	})
}

func TestReadabilityLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  string
	}{
		{0, seoedit.ReadabilityDifficult},
		{15, seoedit.ReadabilityDifficult},
		{15.01, seoedit.ReadabilityModerate},
		{30, seoedit.ReadabilityModerate},
		{30.5, seoedit.ReadabilityEasy},
		{250, seoedit.ReadabilityEasy},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, seoedit.ReadabilityLevel(tt.score), "score %v", tt.score)
	}
}

func TestMetrics_Apply(t *testing.T) {
	t.Parallel()

	site := &seoedit.SiteData{URL: "https://example.com"}
	seoedit.ComputeMetrics("One. Two.").Apply(site)

	assert.Equal(t, 2, site.WordCount)
	assert.InDelta(t, 150.0, site.ReadabilityScore, 0.0001)
	assert.Equal(t, seoedit.ReadabilityEasy, site.ReadabilityLevel)
}

package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillNAWithMean(t *testing.T) {
	analyzer := loadSample(t)

	corrected, modified, err := analyzer.FillNAWithMean()
	require.NoError(t, err)
	require.Len(t, corrected, len(analyzer.Data()))

	// Rows 0, 2 and 3 have missing answers in sampleData.
	assert.Equal(t, []int{0, 2, 3}, modified)

	// Row 0: [80, 90, NA, 70, 60] -> NA filled with mean 75.
	assert.Equal(t, Float(75), corrected[0].Q3)
	assert.Equal(t, Float(80), corrected[0].Q1)

	// Row 2: [NA, NA, 70, 80, 90] -> both NAs filled with mean 80.
	assert.Equal(t, Float(80), corrected[2].Q1)
	assert.Equal(t, Float(80), corrected[2].Q2)
	assert.Equal(t, Float(70), corrected[2].Q3)

	// Row 3: all five missing, mean undefined, cells stay missing.
	for _, answer := range corrected[3].Answers() {
		assert.False(t, answer.Valid)
	}

	// Untouched rows are identical to the original.
	assert.Equal(t, analyzer.Data()[1], corrected[1])
	assert.Equal(t, analyzer.Data()[4], corrected[4])
}

func TestFillNAWithMean_ModifiedRowsFullyPopulated(t *testing.T) {
	analyzer := loadSample(t)

	corrected, modified, err := analyzer.FillNAWithMean()
	require.NoError(t, err)

	for _, idx := range modified {
		original := analyzer.Data()[idx]
		if original.missingAnswers() == QuestionCount {
			continue // undefined mean, stays missing
		}
		for j, answer := range corrected[idx].Answers() {
			assert.True(t, answer.Valid, "row %d q%d should be filled", idx, j+1)
		}
	}
}

func TestFillNAWithMean_NoMissingAnswers(t *testing.T) {
	analyzer := loadTable(t, `[
		{"age": 20, "email": "a@b.c", "gender": "F", "q1": 1, "q2": 2, "q3": 3, "q4": 4, "q5": 5}
	]`)

	corrected, modified, err := analyzer.FillNAWithMean()
	require.NoError(t, err)
	assert.Empty(t, modified)
	assert.Equal(t, analyzer.Data(), corrected)
}

package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelateGenderAge(t *testing.T) {
	analyzer := loadTable(t, `[
		{"age": 25, "email": "a@b.c", "gender": "F", "q1": 10, "q2": 20, "q3": 30, "q4": 40, "q5": 50},
		{"age": 35, "email": "b@b.c", "gender": "F", "q1": 30, "q2": 40, "q3": 50, "q4": 60, "q5": 70},
		{"age": 41, "email": "c@b.c", "gender": "F", "q1": 90, "q2": 90, "q3": 90, "q4": 90, "q5": 90},
		{"age": 40, "email": "d@b.c", "gender": "M", "q1": 60, "q2": 60, "q3": 60, "q4": 60, "q5": 60},
		{"age": 70, "email": "e@b.c", "gender": "M", "q1": 80, "q2": null, "q3": 80, "q4": 80, "q5": 80},
		{"age": null, "email": "f@b.c", "gender": "M", "q1": 0, "q2": 0, "q3": 0, "q4": 0, "q5": 0}
	]`)

	groups, err := analyzer.CorrelateGenderAge()
	require.NoError(t, err)
	require.Len(t, groups, 4)

	// Deterministic order: gender ascending, not-above-40 before above-40.
	assert.Equal(t, GroupKey{Gender: "F", Above40: false}, groups[0].Key)
	assert.Equal(t, GroupKey{Gender: "F", Above40: true}, groups[1].Key)
	assert.Equal(t, GroupKey{Gender: "M", Above40: false}, groups[2].Key)
	assert.Equal(t, GroupKey{Gender: "M", Above40: true}, groups[3].Key)

	// F / not above 40: rows 0 and 1 averaged per question.
	assert.Equal(t, [QuestionCount]NullFloat64{
		Float(20), Float(30), Float(40), Float(50), Float(60),
	}, groups[0].Means)
	assert.Equal(t, 2, groups[0].Size)

	// Age exactly 40 is NOT above 40: row 3 forms the (M, false) group.
	assert.Equal(t, 1, groups[2].Size)
	assert.Equal(t, Float(60), groups[2].Means[0])

	// Missing q2 in row 4 is skipped, not zeroed: the remaining answers
	// still average to 80 and q2's group mean is missing.
	assert.Equal(t, Float(80), groups[3].Means[0])
	assert.False(t, groups[3].Means[1].Valid)

	// The missing-age row joined no group.
	total := 0
	for _, g := range groups {
		total += g.Size
	}
	assert.Equal(t, 5, total)
}

func TestCorrelateGenderAge_GroupMeanMissingWhenAllMissing(t *testing.T) {
	analyzer := loadTable(t, `[
		{"age": 20, "email": "a@b.c", "gender": "X", "q1": null, "q2": 1, "q3": 1, "q4": 1, "q5": 1},
		{"age": 21, "email": "b@b.c", "gender": "X", "q1": null, "q2": 3, "q3": 3, "q4": 3, "q5": 3}
	]`)

	groups, err := analyzer.CorrelateGenderAge()
	require.NoError(t, err)
	require.Len(t, groups, 1)

	assert.False(t, groups[0].Means[0].Valid, "q1 missing in every group member")
	assert.Equal(t, Float(2), groups[0].Means[1])
}

func TestCorrelateGenderAge_AllAgesMissing(t *testing.T) {
	analyzer := loadTable(t, `[
		{"age": null, "email": "a@b.c", "gender": "F", "q1": 1, "q2": 2, "q3": 3, "q4": 4, "q5": 5}
	]`)

	groups, err := analyzer.CorrelateGenderAge()
	require.NoError(t, err)
	assert.Empty(t, groups)
}

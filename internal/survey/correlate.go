package survey

import "sort"

// above40Threshold splits respondents into age groups. Ages of exactly 40
// count as not above 40.
const above40Threshold = 40

// CorrelateGenderAge groups respondents by (gender, above-40) and computes
// the missing-aware mean of each question per group. Rows with a missing
// age join no group. Groups are returned sorted by gender ascending, then
// not-above-40 before above-40, for reproducible output. The loaded table
// is unchanged.
func (a *Analyzer) CorrelateGenderAge() ([]GroupMeans, error) {
	if a.data == nil {
		return nil, a.errNoData("CorrelateGenderAge")
	}

	type accum struct {
		sums   [QuestionCount]float64
		counts [QuestionCount]int
		size   int
	}
	groups := make(map[GroupKey]*accum)

	for _, rec := range a.data {
		if !rec.Age.Valid {
			continue
		}
		key := GroupKey{
			Gender:  rec.Gender,
			Above40: rec.Age.Float64 > above40Threshold,
		}
		acc, ok := groups[key]
		if !ok {
			acc = &accum{}
			groups[key] = acc
		}
		acc.size++
		for j, answer := range rec.Answers() {
			if answer.Valid {
				acc.sums[j] += answer.Float64
				acc.counts[j]++
			}
		}
	}

	result := make([]GroupMeans, 0, len(groups))
	for key, acc := range groups {
		gm := GroupMeans{Key: key, Size: acc.size}
		for j := 0; j < QuestionCount; j++ {
			if acc.counts[j] > 0 {
				gm.Means[j] = Float(acc.sums[j] / float64(acc.counts[j]))
			}
		}
		result = append(result, gm)
	}

	sort.Slice(result, func(i, k int) bool {
		if result[i].Key.Gender != result[k].Key.Gender {
			return result[i].Key.Gender < result[k].Key.Gender
		}
		return !result[i].Key.Above40 && result[k].Key.Above40
	})

	return result, nil
}

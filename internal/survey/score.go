package survey

import "math"

// DefaultMaxNaNsPerSubject is the default missing-answer allowance before a
// subject's score is withheld.
const DefaultMaxNaNsPerSubject = 1

// ScoreSubjects derives a per-row score: floor of the mean of the row's
// non-missing answers, stored as an unsigned 8-bit value. A row with more
// than maxNaNsPerSubject missing answers gets a missing score instead.
// Raw answers are bounded by 100 so the floored mean always fits in uint8.
// The loaded table is unchanged.
func (a *Analyzer) ScoreSubjects(maxNaNsPerSubject int) (ScoredTable, error) {
	if a.data == nil {
		return ScoredTable{}, a.errNoData("ScoreSubjects")
	}

	scored := ScoredTable{
		Records: a.data.Clone(),
		Scores:  make([]NullUint8, len(a.data)),
	}

	for i, rec := range scored.Records {
		if rec.missingAnswers() > maxNaNsPerSubject {
			continue // score stays missing
		}
		mean := rec.answerMean()
		if !mean.Valid {
			continue
		}
		scored.Scores[i] = Score(uint8(math.Floor(mean.Float64)))
	}

	return scored, nil
}

package survey

// FillNAWithMean replaces each missing q1..q5 answer with the mean of that
// row's non-missing answers. A row with no answers at all has an undefined
// mean and its cells stay missing. Returns the corrected copy together with
// the indices of the rows that had at least one missing answer, in
// ascending order. The loaded table is unchanged.
func (a *Analyzer) FillNAWithMean() (Table, []int, error) {
	if a.data == nil {
		return nil, nil, a.errNoData("FillNAWithMean")
	}

	corrected := a.data.Clone()
	modified := make([]int, 0)

	for i := range corrected {
		if corrected[i].missingAnswers() == 0 {
			continue
		}
		modified = append(modified, i)

		mean := corrected[i].answerMean()
		if !mean.Valid {
			continue // all five missing, nothing to fill
		}

		answers := corrected[i].Answers()
		for j := range answers {
			if !answers[j].Valid {
				answers[j] = mean
			}
		}
		corrected[i].SetAnswers(answers)
	}

	return corrected, modified, nil
}

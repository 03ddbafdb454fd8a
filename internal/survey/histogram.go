package survey

// Age histogram bin layout: ten bins of width ten covering [0, 100]. Bins
// are left-inclusive and right-exclusive, except the last which also
// includes 100 exactly.
const (
	ageBinCount = 10
	ageBinWidth = 10
	ageMax      = 100
)

// AgeHistogram is the age distribution of the respondents.
type AgeHistogram struct {
	Counts [ageBinCount]int
	Edges  [ageBinCount + 1]float64
}

// Total is the number of respondents counted into any bin.
func (h AgeHistogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// AgeDistribution computes the histogram of the age column over the fixed
// edges 0,10,...,100. Rows with a missing age fall in no bin, as do ages
// outside [0, 100]. The loaded table is not touched.
func (a *Analyzer) AgeDistribution() (AgeHistogram, error) {
	var hist AgeHistogram
	if a.data == nil {
		return hist, a.errNoData("AgeDistribution")
	}

	for i := range hist.Edges {
		hist.Edges[i] = float64(i * ageBinWidth)
	}

	for _, rec := range a.data {
		if !rec.Age.Valid {
			continue
		}
		age := rec.Age.Float64
		if age < 0 || age > ageMax {
			continue
		}
		bin := int(age) / ageBinWidth
		if bin == ageBinCount { // age exactly 100 belongs to the last bin
			bin = ageBinCount - 1
		}
		hist.Counts[bin]++
	}

	return hist, nil
}

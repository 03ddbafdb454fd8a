package exporter

import (
	"strconv"

	"surveycli/internal/survey"
)

// naCell is the textual rendering of a missing value in CSV and Excel
// output.
const naCell = "NA"

// formatNullFloat renders a nullable numeric cell for report output.
func formatNullFloat(n survey.NullFloat64) string {
	if !n.Valid {
		return naCell
	}
	return strconv.FormatFloat(n.Float64, 'f', -1, 64)
}

// formatNullUint8 renders a nullable score cell for report output.
func formatNullUint8(n survey.NullUint8) string {
	if !n.Valid {
		return naCell
	}
	return strconv.FormatUint(uint64(n.Uint8), 10)
}

// scoredRow renders one scored record as CSV fields.
func scoredRow(index int, rec survey.Record, score survey.NullUint8) []string {
	row := []string{
		strconv.Itoa(index),
		formatNullFloat(rec.Age),
		rec.Email,
		rec.Gender,
	}
	for _, answer := range rec.Answers() {
		row = append(row, formatNullFloat(answer))
	}
	return append(row, formatNullUint8(score))
}

// groupMeansRow renders one correlation group as CSV fields.
func groupMeansRow(g survey.GroupMeans) []string {
	row := []string{g.Key.Gender, strconv.FormatBool(g.Key.Above40)}
	for _, mean := range g.Means {
		row = append(row, formatNullFloat(mean))
	}
	return append(row, strconv.Itoa(g.Size))
}

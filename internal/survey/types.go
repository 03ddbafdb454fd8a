package survey

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// QuestionCount is the number of questionnaire answers per respondent.
const QuestionCount = 5

// NullFloat64 is a missing-aware numeric cell. The zero value is missing.
// JSON null round-trips to an invalid cell; every mean, floor and comparison
// in this package propagates missing rather than treating it as zero.
type NullFloat64 struct {
	Float64 float64
	Valid   bool
}

// Float returns a valid cell holding f.
func Float(f float64) NullFloat64 {
	return NullFloat64{Float64: f, Valid: true}
}

// NA returns a missing cell.
func NA() NullFloat64 {
	return NullFloat64{}
}

// UnmarshalJSON accepts a JSON number or null.
func (n *NullFloat64) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*n = NullFloat64{}
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*n = NullFloat64{Float64: f, Valid: true}
	return nil
}

// MarshalJSON emits the number, or null when missing.
func (n NullFloat64) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// NullUint8 is a missing-aware unsigned 8-bit cell used for subject scores.
type NullUint8 struct {
	Uint8 uint8
	Valid bool
}

// Score returns a valid score cell.
func Score(v uint8) NullUint8 {
	return NullUint8{Uint8: v, Valid: true}
}

// UnmarshalJSON accepts a JSON number or null.
func (n *NullUint8) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*n = NullUint8{}
		return nil
	}
	v, err := strconv.ParseUint(string(data), 10, 8)
	if err != nil {
		return err
	}
	*n = NullUint8{Uint8: uint8(v), Valid: true}
	return nil
}

// MarshalJSON emits the number, or null when missing.
func (n NullUint8) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Uint8)
}

// Record is one respondent's row: demographic fields plus five question
// answers. Extra keys in the source JSON are ignored; the eight named
// fields are resolved by name regardless of key order.
type Record struct {
	Age    NullFloat64 `json:"age"`
	Email  string      `json:"email"`
	Gender string      `json:"gender"`
	Q1     NullFloat64 `json:"q1"`
	Q2     NullFloat64 `json:"q2"`
	Q3     NullFloat64 `json:"q3"`
	Q4     NullFloat64 `json:"q4"`
	Q5     NullFloat64 `json:"q5"`
}

// Answers returns the five question cells in order.
func (r Record) Answers() [QuestionCount]NullFloat64 {
	return [QuestionCount]NullFloat64{r.Q1, r.Q2, r.Q3, r.Q4, r.Q5}
}

// SetAnswers writes the five question cells back in order.
func (r *Record) SetAnswers(answers [QuestionCount]NullFloat64) {
	r.Q1, r.Q2, r.Q3, r.Q4, r.Q5 = answers[0], answers[1], answers[2], answers[3], answers[4]
}

// missingAnswers counts missing cells among q1..q5.
func (r Record) missingAnswers() int {
	missing := 0
	for _, a := range r.Answers() {
		if !a.Valid {
			missing++
		}
	}
	return missing
}

// answerMean is the mean of the non-missing answers. Missing when every
// answer is missing.
func (r Record) answerMean() NullFloat64 {
	sum, count := 0.0, 0
	for _, a := range r.Answers() {
		if a.Valid {
			sum += a.Float64
			count++
		}
	}
	if count == 0 {
		return NA()
	}
	return Float(sum / float64(count))
}

// Table is an ordered sequence of respondent rows. Row order from the source
// file is preserved; analysis operations never mutate a loaded table and
// work on their own copy instead.
type Table []Record

// Clone returns a deep copy of the table. Record is a value type with no
// reference fields, so copying the backing array is a full copy.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// ScoredTable is a table with a derived per-row score column.
type ScoredTable struct {
	Records Table
	Scores  []NullUint8
}

// GroupKey identifies one (gender, above-40) group in the correlation
// output.
type GroupKey struct {
	Gender  string `json:"gender"`
	Above40 bool   `json:"above_40"`
}

// GroupMeans holds the missing-aware mean of each question for one group.
type GroupMeans struct {
	Key   GroupKey                   `json:"key"`
	Means [QuestionCount]NullFloat64 `json:"means"`
	Size  int                        `json:"size"`
}

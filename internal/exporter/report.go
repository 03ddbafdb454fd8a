package exporter

import (
	"time"

	"surveycli/internal/survey"
)

// Report bundles every analysis artifact produced in one run, ready to be
// rendered by the CSV, JSON and Excel writers.
type Report struct {
	RunID       string              `json:"run_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	SourceFile  string              `json:"source_file"`
	TotalRows   int                 `json:"total_rows"`
	Histogram   survey.AgeHistogram `json:"age_distribution"`
	ValidEmails survey.Table        `json:"rows_with_valid_email"`
	Imputed     survey.Table        `json:"imputed_rows"`
	ImputedIdx  []int               `json:"imputed_row_indices"`
	Scored      survey.ScoredTable  `json:"scored_subjects"`
	GroupMeans  []survey.GroupMeans `json:"gender_age_means"`
}

// Default report file names under the reports directory.
const (
	HistogramFileName  = "age_distribution.csv"
	ScoresFileName     = "subject_scores.csv"
	GroupMeansFileName = "gender_age_means.csv"
	JSONReportFileName = "survey_report.json"
	ExcelFileName      = "survey_report.xlsx"
)

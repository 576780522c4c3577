// Package report renders assessment history into flat tabular artifacts.
// The row shape {id, patientName, riskLevel, timestamp, confidence} and its
// field order are a contract consumers parse positionally; never reorder.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"health-ai-server/internal/models"
)

// Header is the fixed column set of the flat export.
var Header = []string{"id", "patientName", "riskLevel", "timestamp", "confidence"}

// Row is one exported assessment. Confidence is the probability of the top
// match, zero when nothing matched.
type Row struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patientName"`
	RiskLevel   string    `json:"riskLevel"`
	Timestamp   time.Time `json:"timestamp"`
	Confidence  float64   `json:"confidence"`
}

// BuildRows flattens assessments into export rows, preserving input order.
func BuildRows(patientName string, assessments []models.RiskAssessment) []Row {
	rows := make([]Row, 0, len(assessments))
	for _, a := range assessments {
		rows = append(rows, Row{
			ID:          a.ID,
			PatientName: patientName,
			RiskLevel:   string(a.OverallRiskLevel),
			Timestamp:   a.Timestamp,
			Confidence:  a.TopProbability(),
		})
	}
	return rows
}

// WriteCSV writes the header plus one line per row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.ID,
			r.PatientName,
			r.RiskLevel,
			r.Timestamp.Format(time.RFC3339),
			strconv.FormatFloat(r.Confidence, 'f', 3, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Summary aggregates history the way the reporting pipeline expects:
// how often each symptom is reported and how assessments distribute over
// risk tiers.
type Summary struct {
	SymptomCounts map[string]int           `json:"symptomCounts"`
	RiskCounts    map[models.RiskLevel]int `json:"riskCounts"`
	Total         int                      `json:"total"`
}

// Summarize computes the summary over the given assessments.
func Summarize(assessments []models.RiskAssessment) Summary {
	s := Summary{
		SymptomCounts: make(map[string]int),
		RiskCounts:    make(map[models.RiskLevel]int),
		Total:         len(assessments),
	}
	for _, a := range assessments {
		s.RiskCounts[a.OverallRiskLevel]++
		for _, symptom := range a.SelectedSymptoms {
			s.SymptomCounts[symptom]++
		}
	}
	return s
}

// WriteXLSX writes a workbook with the flat rows and a summary sheet.
func WriteXLSX(w io.Writer, rows []Row, summary Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	const dataSheet = "Assessments"
	f.SetSheetName("Sheet1", dataSheet)

	for col, name := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(dataSheet, cell, name); err != nil {
			return err
		}
	}
	for i, r := range rows {
		values := []interface{}{r.ID, r.PatientName, r.RiskLevel, r.Timestamp.Format(time.RFC3339), r.Confidence}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(dataSheet, cell, v); err != nil {
				return err
			}
		}
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	line := 1
	setSummaryRow := func(label string, value interface{}) error {
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", line), label); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", line), value); err != nil {
			return err
		}
		line++
		return nil
	}

	if err := setSummaryRow("Total assessments", summary.Total); err != nil {
		return err
	}
	for _, level := range []models.RiskLevel{models.RiskLevelLow, models.RiskLevelMedium, models.RiskLevelHigh, models.RiskLevelCritical} {
		if err := setSummaryRow("Risk "+string(level), summary.RiskCounts[level]); err != nil {
			return err
		}
	}

	symptoms := make([]string, 0, len(summary.SymptomCounts))
	for s := range summary.SymptomCounts {
		symptoms = append(symptoms, s)
	}
	sort.Strings(symptoms)
	for _, s := range symptoms {
		if err := setSummaryRow("Symptom "+s, summary.SymptomCounts[s]); err != nil {
			return err
		}
	}

	return f.Write(w)
}

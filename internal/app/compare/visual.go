package compare

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tealeg/xlsx"

	apperrors "audio2text/internal/app/errors"
)

// Fill colours of the alignment sheet.
const (
	matchColor   = "FFC6EFCE"
	changedColor = "FFFFC7CE"
	missingColor = "FFFFEB9C"
)

// ReportPath is where the visual report goes when no path is given: beside
// the reference, named after both transcripts.
func ReportPath(referencePath, hypothesisPath string) string {
	stem := func(p string) string {
		return strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	name := fmt.Sprintf("comparison_%s_%s.xlsx", stem(referencePath), stem(hypothesisPath))
	return filepath.Join(filepath.Dir(referencePath), name)
}

// WriteVisualReport saves a workbook with the word alignment side by side,
// each row coloured by whether the words match, and a summary sheet.
func WriteVisualReport(path, referenceName, hypothesisName string, r Result) error {
	file, err := buildWorkbook(referenceName, hypothesisName, r)
	if err != nil {
		return err
	}
	if err := file.Save(path); err != nil {
		return apperrors.KindWrap(apperrors.ErrFileWriteFailed, err, "failed to save %s", path)
	}
	return nil
}

func buildWorkbook(referenceName, hypothesisName string, r Result) (*xlsx.File, error) {
	file := xlsx.NewFile()
	alignment, err := file.AddSheet("Alignment")
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to add sheet")
	}
	summary, err := file.AddSheet("Summary")
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to add sheet")
	}

	bold := xlsx.NewStyle()
	bold.Font.Bold = true
	bold.ApplyFont = true
	header := alignment.AddRow()
	for _, h := range []string{"#", referenceName, hypothesisName, "Status"} {
		cell := header.AddCell()
		cell.Value = h
		cell.SetStyle(bold)
	}

	styles := map[Op]*xlsx.Style{
		OpMatch:      fillStyle(matchColor),
		OpSubstitute: fillStyle(changedColor),
		OpDelete:     fillStyle(missingColor),
		OpInsert:     fillStyle(missingColor),
	}
	for i, p := range r.Alignment {
		row := alignment.AddRow()
		row.AddCell().SetInt(i + 1)
		for _, word := range []string{p.Reference, p.Hypothesis, string(p.Op)} {
			cell := row.AddCell()
			cell.Value = word
			cell.SetStyle(styles[p.Op])
		}
	}

	for _, line := range [][2]string{
		{"Reference", referenceName},
		{"Hypothesis", hypothesisName},
		{"Reference words", fmt.Sprint(r.ReferenceWords)},
		{"Hypothesis words", fmt.Sprint(r.HypothesisWords)},
		{"Total words", fmt.Sprint(r.TotalWords)},
		{"Matching words", fmt.Sprint(r.Matches)},
		{"Different words", fmt.Sprintf("%g", r.DifferentWords)},
		{"Word order similarity", fmt.Sprintf("%.2f%%", r.WordOrderSimilarity*100)},
		{"Word error rate", fmt.Sprintf("%.2f%%", r.WER*100)},
	} {
		row := summary.AddRow()
		row.AddCell().Value = line[0]
		row.AddCell().Value = line[1]
	}
	return file, nil
}

func fillStyle(color string) *xlsx.Style {
	style := xlsx.NewStyle()
	style.Fill = *xlsx.NewFill("solid", color, color)
	style.ApplyFill = true
	return style
}

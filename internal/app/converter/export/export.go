package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/model"
)

var headers = []string{
	"ID", "Kind", "Created At", "Source", "Output", "Provider", "Status", "Audio Seconds", "Error Message",
}

// ToExcel writes records to a single "Runs" sheet at outputFilePath.
func ToExcel(records []model.RunRecord, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Runs")
	if err != nil {
		return apperrors.Wrap(err, "failed to add sheet")
	}

	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().Value = h
	}

	for _, r := range records {
		row := sheet.AddRow()
		row.AddCell().Value = r.ID
		row.AddCell().Value = string(r.Kind)
		row.AddCell().Value = r.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = r.Source
		row.AddCell().Value = r.Output
		row.AddCell().Value = r.Provider
		row.AddCell().Value = r.Status
		row.AddCell().Value = fmt.Sprintf("%.2f", r.AudioSeconds)
		row.AddCell().Value = r.ErrorMessage
	}

	if err := file.Save(outputFilePath); err != nil {
		return apperrors.KindWrap(apperrors.ErrFileWriteFailed, err, "failed to save %s", outputFilePath)
	}
	return nil
}

package analytics

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// trendExportLimit caps exported rows so a long-lived school still produces a
// one-page sheet.
const trendExportLimit = 50

// ExportSchoolTrend writes a school's approved trend line as an xlsx workbook.
func ExportSchoolTrend(w io.Writer, db *gorm.DB, schoolID int) error {
	trend, err := GetSchoolTrend(db, schoolID, trendExportLimit)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	// Add headers
	f.SetCellValue(sheetName, "A1", "School")
	f.SetCellValue(sheetName, "B1", trend.SchoolName)
	f.SetCellValue(sheetName, "C1", "Trend")
	f.SetCellValue(sheetName, "D1", trend.Summary.Direction)
	f.SetCellValue(sheetName, "E1", "Change")
	f.SetCellValue(sheetName, "F1", trend.Summary.Change)
	f.SetCellValue(sheetName, "A2", "Date")
	f.SetCellValue(sheetName, "B2", "ReportType")
	f.SetCellValue(sheetName, "C2", "Rating")
	f.SetCellValue(sheetName, "D2", "Score")

	// Add data
	for i, p := range trend.Points {
		row := fmt.Sprint(i + 3)
		f.SetCellValue(sheetName, "A"+row, p.InspectionDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, "B"+row, string(p.ReportType))
		f.SetCellValue(sheetName, "C"+row, string(p.Rating))
		f.SetCellValue(sheetName, "D"+row, p.Value)
	}

	if err := f.Write(w); err != nil {
		return err
	}
	return nil
}

package exporter

import (
	"fmt"
	"io"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/xuri/excelize/v2"
)

// SheetName - имя листа выгрузки
const SheetName = "Incidents"

// WriteXLSX пишет таблицу в книгу Excel с одним листом.
// Числа и флаги записываются типизированными ячейками, отсутствующие значения - пустыми.
func WriteXLSX(w io.Writer, incidents []models.Incident) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("exporter: could not name sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("exporter: could not write xlsx header: %w", err)
	}

	for i := range incidents {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("exporter: could not address row %d: %w", i+1, err)
		}
		row := xlsxRow(&incidents[i])
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("exporter: could not write xlsx row %d: %w", i+1, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("exporter: could not freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("exporter: could not write xlsx: %w", err)
	}
	return nil
}

func xlsxRow(inc *models.Incident) []interface{} {
	return []interface{}{
		inc.SourceID,
		formatDate(inc.IncidentDate),
		inc.RegionCode,
		optString(inc.RegionName),
		inc.City,
		cellFloat(inc.Latitude),
		cellFloat(inc.Longitude),
		inc.SchoolName,
		inc.NumberKilled,
		inc.NumberWounded,
		inc.Intent,
		inc.Outcome,
		optString(inc.Narrative),
		cellInt(inc.Year),
		optString(inc.MonthAbbrev),
		cellInt(inc.MonthNumber),
		optString(inc.DayOfWeekAbbrev),
		cellInt(inc.DayOfWeekNumber),
		cellInt(inc.Quarter),
		optString(inc.AcademicYear),
		cellInt(inc.DaysSinceIncident),
		inc.TotalCasualties,
		inc.IsFatal,
		inc.IsMassCasualty,
		string(inc.Severity),
		cellInt(inc.DaysSincePreviousInRegion),
	}
}

func cellFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func cellInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes d to path as a workbook with one sheet per collection.
func WriteXLSX(d Data, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range SheetNames {
		if i == 0 {
			// Rename the default sheet instead of leaving it empty.
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("create sheet %s: %w", name, err)
			}
		}

		rows, err := sheetRows(name, d)
		if err != nil {
			return err
		}
		for r, row := range rows {
			for c, value := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return fmt.Errorf("cell %d,%d: %w", c+1, r+1, err)
				}
				if err := f.SetCellValue(name, cell, value); err != nil {
					return fmt.Errorf("set %s!%s: %w", name, cell, err)
				}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

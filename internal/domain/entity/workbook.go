package entity

// OriginalWorkbook keeps the raw bytes of the last imported Excel file so the
// filtered re-export can rebuild rows with their original columns and
// hyperlink formulas.
type OriginalWorkbook struct {
	Filename  string
	SheetName string

	// HeaderRow is the zero-based index of the detected header row.
	HeaderRow int

	Raw []byte
}

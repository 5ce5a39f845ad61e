package domain

// Row is a single spreadsheet row keyed by header name.
type Row map[string]string

// TabularDataset is one sheet (or one CSV file) loaded into memory.
// It exists only for the duration of a run; nothing is persisted.
type TabularDataset struct {
	SourceFile string
	SheetName  string
	Headers    []string
	Rows       []Row
}

// HasColumn reports whether the dataset carries the given header.
func (d *TabularDataset) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

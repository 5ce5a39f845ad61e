package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/traxovo/fleet-ledger/pkg/models/domain"
)

type TableConfig struct {
	KeyWidth   int
	TypeWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		KeyWidth:   36,
		TypeWidth:  10,
		ValueWidth: 14,
	}
}

// Reporter renders run summaries and diff results to the console.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.RunReport) error {
	tmpl := `
Reconciliation run {{.RunID}}
Started:  {{.Started.Format "2006-01-02 15:04:05"}}
Finished: {{.Finished.Format "2006-01-02 15:04:05"}}
Total Records: {{.TotalRecords}}
Total Amount: {{printf "%.2f" .TotalAmount}}

=== Files ===
{{range .Files}}
- {{.File}}: {{.Records}} records, amount {{printf "%.2f" .Amount}} ({{.SheetsUsed}} sheets used, {{.SheetsSkipped}} skipped, {{.RowsSkipped}} rows skipped{{if .UnparsedCells}}, {{.UnparsedCells}} unparsed cells{{end}})
{{end}}
=== Divisions ===
{{range .Divisions}}
- {{.Division}}: {{.Records}} records, amount {{printf "%.2f" .Amount}}
{{end}}
`

	t, err := template.New("run").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, report)
}

func (c *Reporter) HandleChanges(changes []domain.ChangeRecord) error {
	funcMap := template.FuncMap{
		"formatRow": func(key string, changeType, original, newVal, diff interface{}) string {
			return fmt.Sprintf("| %-*s | %-*v | %*v | %*v | %*v |",
				c.config.KeyWidth, key,
				c.config.TypeWidth, changeType,
				c.config.ValueWidth, original,
				c.config.ValueWidth, newVal,
				c.config.ValueWidth, diff)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.KeyWidth+2),
				strings.Repeat("-", c.config.TypeWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
	}

	tmpl := `
{{len .}} change(s)

{{separator}}
{{formatRow "Key" "Type" "Original" "New" "Difference"}}
{{separator}}
{{range .}}{{formatRow .Key .Type (printf "%.2f" .OriginalValue) (printf "%.2f" .NewValue) (printf "%.2f" .Difference)}}
{{end}}{{separator}}
`

	t, err := template.New("changes").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, changes)
}

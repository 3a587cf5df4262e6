package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/taxberg/internal/rules"
)

// HTMLFormatter produces a standalone HTML page with the summary cards and
// the taxberg drawing
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/taxberg.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	var assumptions []string
	if rt, err := rules.ForYear(r.Breakdown.TaxYear); err == nil {
		assumptions = Assumptions(rt)
	}
	data := struct {
		*Report
		Assumptions []string
	}{r, assumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

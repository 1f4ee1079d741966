package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/rentdesk/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

var billsTemplate = template.Must(template.New("bills").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  @page { size: A4; }
  body { font-family: "Helvetica", "Arial", sans-serif; font-size: 10pt; }
  h1 { font-size: 14pt; white-space: pre; }
  .line { white-space: pre; line-height: 1.6; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Bills}}<div class="line">{{.RoomNo}} {{.Period}} rent={{money .Charges.RentFee}} w={{money .Charges.WaterFee}} e={{money .Charges.ElecFee}} g={{money .Charges.GasFee}} prop={{money .Charges.PropertyFee}} total={{money .Charges.Total}} {{.Payment.Status}}</div>
{{end}}</body>
</html>
`))

type billsPage struct {
	Title string
	Bills []*billing.BillWithRoom
}

// PDFTitle is the heading of a bill PDF
func PDFTitle(period string) string {
	return fmt.Sprintf("Bills Export  Period: %s", period)
}

// RenderBillsHTML fills the bill listing template
func RenderBillsHTML(period string, bills []*billing.BillWithRoom) (string, error) {
	var buf bytes.Buffer
	if err := billsTemplate.Execute(&buf, billsPage{Title: PDFTitle(period), Bills: bills}); err != nil {
		return "", fmt.Errorf("failed to render bill template: %w", err)
	}
	return buf.String(), nil
}

// WritePDF renders bills to a PDF through renderer
func WritePDF(ctx context.Context, renderer PDFRenderer, period string, bills []*billing.BillWithRoom) ([]byte, error) {
	doc, err := RenderBillsHTML(period, bills)
	if err != nil {
		return nil, err
	}
	result, err := renderer.Render(ctx, &RenderRequest{HTML: doc, Title: PDFTitle(period)})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

// Package render turns a computed proforma document into export formats.
// All money strings arrive pre-formatted; nothing here touches the engine.
package render

import (
	"bytes"
	"html/template"

	"github.com/movelar/proforma/internal/proforma/domain"
)

const proformaHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Proforma Invoice {{.Number}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      color: #1a1f36;
      background: #f7f9fc;
      -webkit-font-smoothing: antialiased;
    }
    .proforma-card {
      background: #ffffff;
      max-width: 820px;
      margin: 0 auto;
      padding: 60px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    .header {
      display: flex;
      justify-content: space-between;
      margin-bottom: 40px;
    }
    .header-left h1 {
      margin: 0;
      font-size: 24px;
      font-weight: 700;
    }
    .header-right {
      text-align: right;
      font-weight: 600;
      color: #8792a2;
      font-size: 16px;
    }
    .meta-grid {
      display: flex;
      justify-content: space-between;
      margin-bottom: 40px;
    }
    .col { flex: 1; }
    .label {
      font-size: 11px;
      text-transform: uppercase;
      color: #8792a2;
      margin-bottom: 6px;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    .value {
      font-size: 14px;
      line-height: 1.5;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      margin-bottom: 30px;
    }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 11px;
      color: #8792a2;
      border-bottom: 1px solid #e3e8ee;
      padding: 10px 0;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    td {
      padding: 14px 0;
      border-bottom: 1px solid #e3e8ee;
      font-size: 14px;
      vertical-align: top;
    }
    .td-right { text-align: right; }
    .totals {
      width: 100%;
      display: flex;
      flex-direction: column;
      align-items: flex-end;
    }
    .total-row {
      display: flex;
      justify-content: space-between;
      width: 280px;
      padding: 6px 0;
      font-size: 14px;
    }
    .total-label { color: #697386; }
    .total-value { text-align: right; font-weight: 500; }
    .total-final {
      border-top: 1px solid #e3e8ee;
      margin-top: 10px;
      padding-top: 10px;
      font-weight: 700;
      font-size: 16px;
    }
    .footer {
      margin-top: 60px;
      font-size: 12px;
      color: #8792a2;
      border-top: 1px solid #e3e8ee;
      padding-top: 20px;
    }
  </style>
</head>
<body>
  <div class="proforma-card">
    <div class="header">
      <div class="header-left">
        <h1>Proforma Invoice</h1>
        <div class="label" style="margin-top: 12px;">Number</div>
        <div class="value">{{.Number}}</div>
      </div>
      <div class="header-right">
        {{.Incoterm}} &middot; {{.CurrencyMode}}<br>
        <span style="font-size: 12px; font-weight: 500;">{{.Status}}</span>
      </div>
    </div>

    <div class="meta-grid">
      <div class="col">
        <div class="label">Consignee</div>
        <div class="value">
          <strong>{{.ClientName}}</strong><br>
          {{if .Consignee}}{{.Consignee}}<br>{{end}}
          {{if .Address}}{{.Address}}<br>{{end}}
          {{.ClientCountry}}
        </div>
      </div>
      {{if .SupplierName}}
      <div class="col">
        <div class="label">Supplier</div>
        <div class="value">{{.SupplierName}}</div>
      </div>
      {{end}}
      <div class="col" style="flex: 0 0 200px;">
        <div class="label">Generated</div>
        <div class="value">{{.GeneratedAt}}</div>
        {{if .IssuedAt}}
        <div class="label" style="margin-top: 16px;">Issued</div>
        <div class="value">{{.IssuedAt}}</div>
        {{end}}
        <div class="label" style="margin-top: 16px;">Spot / Risk Rate</div>
        <div class="value">{{.SpotRate}} / {{.RiskRate}}</div>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th style="width: 40%;">Description</th>
          <th class="td-right">Qty</th>
          <th class="td-right">Volume m&sup3;</th>
          <th class="td-right">Unit Price</th>
          <th class="td-right">Freight BRL</th>
          <th class="td-right">Total BRL</th>
          <th class="td-right">Total USD</th>
        </tr>
      </thead>
      <tbody>
        {{range .Lines}}
        <tr>
          <td>{{.Description}}</td>
          <td class="td-right">{{.Quantity}}</td>
          <td class="td-right">{{.UnitVolume}}</td>
          <td class="td-right">{{.UnitPrice}}</td>
          <td class="td-right">{{.FreightBRL}}</td>
          <td class="td-right">{{.TotalBRL}}</td>
          <td class="td-right" style="font-weight: 500;">{{.TotalUSD}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="total-row">
        <span class="total-label">Freight BRL</span>
        <span class="total-value">{{.FreightTotalBRL}}</span>
      </div>
      <div class="total-row">
        <span class="total-label">Freight USD</span>
        <span class="total-value">{{.FreightTotalUSD}}</span>
      </div>
      <div class="total-row">
        <span class="total-label">Total BRL</span>
        <span class="total-value">{{.TotalBRL}}</span>
      </div>
      <div class="total-row total-final">
        <span class="total-label" style="color: #1a1f36;">Total USD</span>
        <span class="total-value">{{.TotalUSD}}</span>
      </div>
    </div>

    <div class="footer">
      Export reference {{.ExportID}}. This proforma invoice is issued for customs
      and payment arrangement purposes and is not a VAT invoice.
    </div>
  </div>
</body>
</html>
`

type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tpl: template.Must(template.New("proforma").Parse(proformaHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(doc domain.Document) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package render

import (
	"testing"

	"github.com/movelar/proforma/internal/proforma/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	r := NewHTMLRenderer()

	html, err := r.RenderHTML(domain.Document{
		ExportID:        "01J5TESTEXPORT",
		Number:          "PI-202608-0007",
		Status:          "DRAFT",
		CurrencyMode:    "EXW_USD",
		Incoterm:        "FOB",
		ClientName:      "Casa Verde Imports",
		ClientCountry:   "MX",
		SupplierName:    "Estofados Sul",
		SpotRate:        "5.5000",
		RiskRate:        "5.2000",
		GeneratedAt:     "2026-08-28",
		Lines: []domain.DocumentLine{
			{Description: "Chaise 90 / Linen Sand", Quantity: "2", UnitVolume: "0.450", UnitPrice: "22.12", FreightBRL: "100.00", TotalBRL: "344.25", TotalUSD: "66.20"},
		},
		FreightTotalBRL: "400.00",
		FreightTotalUSD: "76.92",
		TotalBRL:        "344.25",
		TotalUSD:        "66.20",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "PI-202608-0007")
	assert.Contains(t, html, "Casa Verde Imports")
	assert.Contains(t, html, "Estofados Sul")
	assert.Contains(t, html, "22.12")
	assert.Contains(t, html, "5.5000 / 5.2000")
	assert.Contains(t, html, "01J5TESTEXPORT")
}

func TestRenderHTML_EscapesClientInput(t *testing.T) {
	r := NewHTMLRenderer()

	html, err := r.RenderHTML(domain.Document{
		Number:     "PI-202608-0008",
		ClientName: `<script>alert("x")</script>`,
	})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

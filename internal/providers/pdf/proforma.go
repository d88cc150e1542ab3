package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/movelar/proforma/internal/proforma/domain"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateProforma(ctx context.Context, document domain.Document) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, "Proforma Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, document.Status, props.Text{
			Size:  10,
			Align: align.Right,
			Top:   4,
		}),
	)

	// Document meta
	m.AddRow(22,
		col.New(6).Add(
			text.New("Number: "+document.Number, props.Text{Top: 0}),
			text.New("Generated: "+document.GeneratedAt, props.Text{Top: 4}),
			text.New("Incoterm: "+document.Incoterm+"  Mode: "+document.CurrencyMode, props.Text{Top: 8}),
			text.New("Spot / risk rate: "+document.SpotRate+" / "+document.RiskRate, props.Text{Top: 12}),
		),
		col.New(6),
	)

	// Parties
	m.AddRow(36,
		col.New(6).Add(
			text.New("Consignee", props.Text{Style: fontstyle.Bold}),
			text.New(document.ClientName, props.Text{Top: 5}),
			text.New(document.Consignee, props.Text{Top: 9}),
			text.New(document.Address, props.Text{Top: 13}),
			text.New(document.ClientCountry, props.Text{Top: 17}),
		),
		col.New(6).Add(
			text.New("Supplier", props.Text{Style: fontstyle.Bold}),
			text.New(document.SupplierName, props.Text{Top: 5}),
		),
	)

	// Table header
	m.AddRow(10,
		text.NewCol(4, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "m3", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Total BRL", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Total USD", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, line := range document.Lines {
		m.AddRow(12,
			text.NewCol(4, line.Description, props.Text{Size: 9}),
			text.NewCol(1, line.Quantity, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, line.UnitVolume, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.TotalBRL, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.TotalUSD, props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Totals
	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Freight BRL", props.Text{Size: 9}),
		text.NewCol(2, document.FreightTotalBRL, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Freight USD", props.Text{Size: 9}),
		text.NewCol(2, document.FreightTotalUSD, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Total BRL", props.Text{Size: 9}),
		text.NewCol(2, document.TotalBRL, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Total USD", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, document.TotalUSD, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	// Footer
	m.AddRow(16,
		text.NewCol(12, "Export reference "+document.ExportID+". Issued for customs and payment arrangement purposes.", props.Text{
			Size: 8,
			Top:  6,
		}),
	)

	out, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(out.GetBytes()), nil
}

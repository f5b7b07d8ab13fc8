// Package pdf implementa la exportación del reporte de niveles de stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Proveedor | Stock                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: unidades en inventario                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dcastano/almacen-api/internal/application/reports"
	"github.com/dcastano/almacen-api/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.StockReportGenerator = (*StockReportPDF)(nil)

// StockReportPDF implementa reports.StockReportGenerator usando Maroto v2.
type StockReportPDF struct{}

// NewStockReportPDF construye el generador.
func NewStockReportPDF() *StockReportPDF { return &StockReportPDF{} }

// GenerateStockReport genera el PDF de niveles de stock y devuelve sus bytes.
func (g *StockReportPDF) GenerateStockReport(
	_ context.Context,
	rows []repository.StockLevelRow,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de niveles de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(detailRow(r))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de niveles de stock", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Top: 3, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}
	return row.New(7).Add(
		col.New(6).Add(text.New("Producto", header)),
		col.New(4).Add(text.New("Proveedor", header)),
		col.New(2).Add(text.New("Stock", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1, Align: align.Right,
		})),
	)
}

func detailRow(r repository.StockLevelRow) core.Row {
	cell := props.Text{Size: 9, Top: 1}
	return row.New(6).Add(
		col.New(6).Add(text.New(r.ProductName, cell)),
		col.New(4).Add(text.New(r.SupplierName, cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", r.StockQuantity), props.Text{
			Size: 9, Top: 1, Align: align.Right,
		})),
	)
}

// totalRow: suma de unidades de todos los productos listados.
func totalRow(rows []repository.StockLevelRow) core.Row {
	var total int64
	for _, r := range rows {
		total += r.StockQuantity
	}
	return row.New(8).Add(
		col.New(10).Add(text.New("Total unidades en inventario", props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 2, Align: align.Right,
		})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", total), props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 2, Align: align.Right, Color: colorPrimary,
		})),
	)
}

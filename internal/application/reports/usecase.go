package reports

import (
	"context"
	"time"

	"github.com/dcastano/almacen-api/internal/application/dto"
	"github.com/dcastano/almacen-api/internal/domain/repository"
)

// StockReportGenerator puerto para exportar el reporte de niveles de stock.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, rows []repository.StockLevelRow, generatedAt time.Time) ([]byte, error)
}

// ReportUseCase vistas de solo lectura: niveles de stock, auditoría del
// libro de movimientos y exportación a PDF. Sin efectos de escritura.
type ReportUseCase struct {
	repo repository.ReportingRepository
	pdf  StockReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportingRepository, pdf StockReportGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, pdf: pdf}
}

// StockLevels lista la cantidad actual por producto con su proveedor.
func (uc *ReportUseCase) StockLevels(ctx context.Context, limit, offset int) (*dto.StockLevelResponse, error) {
	rows, err := uc.repo.StockLevels(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLevelItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.StockLevelItem{
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			SupplierName:  r.SupplierName,
			StockQuantity: r.StockQuantity,
		})
	}
	return &dto.StockLevelResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// LedgerAudit verifica el invariante del libro producto por producto:
// stock_quantity == initial_quantity + suma con signo de movimientos.
// Devuelve solo las filas con deriva (normalmente ninguna).
func (uc *ReportUseCase) LedgerAudit(ctx context.Context) (*dto.LedgerAuditResponse, error) {
	rows, err := uc.repo.LedgerAudit(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.LedgerAuditResponse{Consistent: true, Checked: len(rows)}
	for _, r := range rows {
		if r.Consistent() {
			continue
		}
		resp.Consistent = false
		resp.Drift = append(resp.Drift, dto.LedgerAuditItem{
			ProductID:       r.ProductID,
			ProductName:     r.ProductName,
			StockQuantity:   r.StockQuantity,
			InitialQuantity: r.InitialQuantity,
			MovementTotal:   r.MovementTotal,
			Expected:        r.InitialQuantity + r.MovementTotal,
		})
	}
	return resp, nil
}

// Tamaño de lote para leer el inventario completo al exportar.
const pdfBatchSize = 1000

// StockLevelsPDF genera el reporte de niveles de stock en PDF. El PDF lleva
// el inventario completo, leído por lotes para no cargar todo en una sola
// consulta ni truncar catálogos grandes.
func (uc *ReportUseCase) StockLevelsPDF(ctx context.Context) ([]byte, error) {
	var rows []repository.StockLevelRow
	for offset := 0; ; offset += pdfBatchSize {
		batch, err := uc.repo.StockLevels(ctx, pdfBatchSize, offset)
		if err != nil {
			return nil, err
		}
		rows = append(rows, batch...)
		if len(batch) < pdfBatchSize {
			break
		}
	}
	return uc.pdf.GenerateStockReport(ctx, rows, time.Now())
}

package dto

// StockLevelItem nivel de stock de un producto.
type StockLevelItem struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	SupplierName  string `json:"supplier_name"`
	StockQuantity int64  `json:"stock_quantity"`
}

// StockLevelResponse listado de niveles de stock.
type StockLevelResponse struct {
	Items []StockLevelItem `json:"items"`
	Page  PageResponse     `json:"page"`
}

// LedgerAuditItem discrepancia entre la cantidad materializada y el libro.
type LedgerAuditItem struct {
	ProductID       string `json:"product_id"`
	ProductName     string `json:"product_name"`
	StockQuantity   int64  `json:"stock_quantity"`
	InitialQuantity int64  `json:"initial_quantity"`
	MovementTotal   int64  `json:"movement_total"`
	Expected        int64  `json:"expected"` // initial + movement_total
}

// LedgerAuditResponse resultado de la auditoría del libro.
type LedgerAuditResponse struct {
	Consistent bool              `json:"consistent"`
	Checked    int               `json:"checked"`
	Drift      []LedgerAuditItem `json:"drift"`
}

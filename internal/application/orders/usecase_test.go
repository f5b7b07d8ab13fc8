package orders_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/almacen-api/internal/application/dto"
	"github.com/dcastano/almacen-api/internal/application/inventory"
	"github.com/dcastano/almacen-api/internal/application/orders"
	"github.com/dcastano/almacen-api/internal/domain"
	"github.com/dcastano/almacen-api/internal/domain/entity"
	"github.com/dcastano/almacen-api/internal/domain/repository"
	"github.com/dcastano/almacen-api/pkg/textutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) UpdateStock(productID string, quantity int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}

func (r *fakeProductRepo) Search(filter string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(string, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) Search(string, int, int) ([]repository.MovementListRow, error) {
	return nil, nil
}

func (r *fakeMovementRepo) byType(t entity.MovementType) []*entity.StockMovement {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

type fakeOrderRepo struct {
	mu       sync.Mutex
	orders   map[string]*entity.SaleOrder
	products *fakeProductRepo
}

func newFakeOrderRepo(products *fakeProductRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.SaleOrder), products: products}
}

func (r *fakeOrderRepo) Create(o *entity.SaleOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.SaleOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.SaleOrder, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) UpdateStatus(o *entity.SaleOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = o.Status
	stored.UpdatedAt = o.UpdatedAt
	return nil
}

func (r *fakeOrderRepo) Search(productFilter string, status entity.OrderStatus, limit, offset int) ([]repository.OrderListRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []repository.OrderListRow
	for _, o := range r.orders {
		p, _ := r.products.GetByID(o.ProductID)
		name := ""
		if p != nil {
			name = p.Name
		}
		// El filtro llega ya plegado; el SQL real pliega también la columna
		if productFilter != "" && !strings.Contains(textutil.FoldSearch(name), productFilter) {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, repository.OrderListRow{Order: *o, ProductName: name})
	}
	return out, nil
}

// fakeTxRunner serializa las "transacciones" con un mutex, igual que lo hace
// el bloqueo de fila en PostgreSQL.
type fakeTxRunner struct {
	mu        sync.Mutex
	movRepo   *fakeMovementRepo
	prodRepo  *fakeProductRepo
	orderRepo *fakeOrderRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.movRepo, r.prodRepo)
}

func (r *fakeTxRunner) RunOrder(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.SaleOrderRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.movRepo, r.prodRepo, r.orderRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc           *orders.SaleOrderUseCase
	productRepo  *fakeProductRepo
	movementRepo *fakeMovementRepo
	orderRepo    *fakeOrderRepo
}

func buildFixture() *fixture {
	productRepo := newFakeProductRepo()
	movementRepo := &fakeMovementRepo{}
	orderRepo := newFakeOrderRepo(productRepo)
	runner := &fakeTxRunner{movRepo: movementRepo, prodRepo: productRepo, orderRepo: orderRepo}
	inventoryUC := inventory.NewRegisterMovementUseCase(runner, productRepo, movementRepo)
	uc := orders.NewSaleOrderUseCase(runner, inventoryUC, orderRepo, productRepo)
	return &fixture{uc: uc, productRepo: productRepo, movementRepo: movementRepo, orderRepo: orderRepo}
}

func (f *fixture) seedProduct(t *testing.T, price int64, stock int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:              uuid.New().String(),
		SupplierID:      uuid.New().String(),
		Name:            "Panela artesanal",
		Price:           decimal.NewFromInt(price),
		StockQuantity:   stock,
		InitialQuantity: stock,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	require.NoError(t, f.productRepo.Create(p))
	return p
}

func (f *fixture) stockOf(t *testing.T, productID string) int64 {
	t.Helper()
	p, err := f.productRepo.GetByID(productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockQuantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DescuentaStockYRegistraSalida(t *testing.T) {
	f := buildFixture()
	p := f.seedProduct(t, 3500, 10)

	order, err := f.uc.Create(context.Background(), dto.CreateSaleOrderRequest{
		ProductID: p.ID,
		Quantity:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pending", order.Status, "la orden debe nacer en Pending")
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(10500)),
		"el precio total debe congelarse como precio × cantidad")
	assert.Equal(t, int64(7), f.stockOf(t, p.ID), "el stock debe descontarse al crear")

	outs := f.movementRepo.byType(entity.MovementOut)
	require.Len(t, outs, 1, "debe quedar un movimiento Out en el libro")
	assert.Equal(t, int64(3), outs[0].Quantity)
	assert.Contains(t, outs[0].Notes, order.ID, "el movimiento debe referenciar la orden")
}

func TestCreate_SinStockSuficienteNoDejaRastro(t *testing.T) {
	f := buildFixture()
	p := f.seedProduct(t, 1000, 2)

	_, err := f.uc.Create(context.Background(), dto.CreateSaleOrderRequest{
		ProductID: p.ID,
		Quantity:  5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), f.stockOf(t, p.ID), "el stock no debe cambiar")
	assert.Empty(t, f.movementRepo.movements, "no debe quedar movimiento")
	assert.Empty(t, f.orderRepo.orders, "no debe quedar orden")
}

func TestCreate_ProductoInexistente(t *testing.T) {
	f := buildFixture()

	_, err := f.uc.Create(context.Background(), dto.CreateSaleOrderRequest{
		ProductID: uuid.New().String(),
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_CantidadInvalida(t *testing.T) {
	f := buildFixture()
	p := f.seedProduct(t, 1000, 10)

	_, err := f.uc.Create(context.Background(), dto.CreateSaleOrderRequest{
		ProductID: p.ID,
		Quantity:  0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Órdenes concurrentes sobre el mismo producto: la verificación y el
// descuento son atómicos, el stock nunca queda negativo.
func TestCreate_OrdenesConcurrentesNoSobrevenden(t *testing.T) {
	f := buildFixture()
	p := f.seedProduct(t, 1000, 10)

	const workers = 20
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Create(context.Background(), dto.CreateSaleOrderRequest{
				ProductID: p.ID,
				Quantity:  1,
			})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case err == domain.ErrInsufficientStock:
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 10, ok, "deben crearse exactamente 10 órdenes")
	assert.Equal(t, 10, insufficient, "el resto debe rechazarse")
	assert.Equal(t, int64(0), f.stockOf(t, p.ID), "el stock final debe ser cero")
	assert.Len(t, f.orderRepo.orders, 10)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_ReponeStockYRegistraEntrada(t *testing.T) {
	f := buildFixture()
	p := f.seedProduct(t, 1000, 10)

	order, err := f.uc.Create(context.Background(), dto.CreateSaleOrderRequest{
		ProductID: p.ID, Quantity: 4,
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), f.stockOf(t, p.ID))

	cancelled, err := f.uc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", cancelled.Status)
	assert.Equal(t, int64(10), f.stockOf(t, p.ID), "cancelar debe reponer el stock descontado")

	ins := f.movementRepo.byType(entity.MovementIn)
	require.Len(t, ins, 1, "la reposición debe quedar en el libro")
	assert.Equal(t, int64(4), ins[0].Quantity)
	assert.Contains(t, ins[0].Notes, order.ID)
}

// Cancelar dos veces: la segunda es 409 y no repone stock de nuevo.
func TestCancel_DobleCancelacionNoReponeDosVeces(t *testing.T) {
	f := buildFixture()
	p := f.seedProduct(t, 1000, 10)

	order, err := f.uc.Create(context.Background(), dto.CreateSaleOrderRequest{
		ProductID: p.ID, Quantity: 4,
	})
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"cancelar una orden ya cancelada debe rechazarse")
	assert.Equal(t, int64(10), f.stockOf(t, p.ID), "el stock no debe reponerse dos veces")
	assert.Len(t, f.movementRepo.byType(entity.MovementIn), 1)
}

func TestCancel_OrdenInexistente(t *testing.T) {
	f := buildFixture()
	_, err := f.uc.Cancel(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Complete
// ──────────────────────────────────────────────────────────────────────────────

func TestComplete_SoloCambiaElEstado(t *testing.T) {
	f := buildFixture()
	p := f.seedProduct(t, 1000, 10)

	order, err := f.uc.Create(context.Background(), dto.CreateSaleOrderRequest{
		ProductID: p.ID, Quantity: 4,
	})
	require.NoError(t, err)
	movementsAfterCreate := len(f.movementRepo.movements)

	completed, err := f.uc.Complete(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Completed", completed.Status)
	assert.Equal(t, int64(6), f.stockOf(t, p.ID),
		"completar no toca el inventario, el descuento ocurrió al crear")
	assert.Len(t, f.movementRepo.movements, movementsAfterCreate,
		"completar no agrega movimientos al libro")
}

func TestComplete_OrdenCanceladaRechazada(t *testing.T) {
	f := buildFixture()
	p := f.seedProduct(t, 1000, 10)

	order, err := f.uc.Create(context.Background(), dto.CreateSaleOrderRequest{
		ProductID: p.ID, Quantity: 2,
	})
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = f.uc.Complete(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancel_OrdenCompletadaRechazada(t *testing.T) {
	f := buildFixture()
	p := f.seedProduct(t, 1000, 10)

	order, err := f.uc.Create(context.Background(), dto.CreateSaleOrderRequest{
		ProductID: p.ID, Quantity: 2,
	})
	require.NoError(t, err)

	_, err = f.uc.Complete(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"una orden completada no puede cancelarse ni reponer stock")
	assert.Equal(t, int64(8), f.stockOf(t, p.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests List
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltraPorEstado(t *testing.T) {
	f := buildFixture()
	p := f.seedProduct(t, 1000, 10)

	o1, err := f.uc.Create(context.Background(), dto.CreateSaleOrderRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), dto.CreateSaleOrderRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = f.uc.Cancel(context.Background(), o1.ID)
	require.NoError(t, err)

	resp, err := f.uc.List("", "Pending", 10, 0)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)

	resp, err = f.uc.List("", "Cancelled", 10, 0)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, o1.ID, resp.Items[0].ID)
	assert.Equal(t, "Panela artesanal", resp.Items[0].ProductName)

	resp, err = f.uc.List("", "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
}

func TestList_FiltroConTildesEncuentraLaOrden(t *testing.T) {
	f := buildFixture()
	p := f.seedProduct(t, 1000, 10)

	_, err := f.uc.Create(context.Background(), dto.CreateSaleOrderRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	resp, err := f.uc.List("ARTESANÁL", "", 10, 0)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1, "el filtro con tilde debe plegarse y coincidir")
	assert.Equal(t, "Panela artesanal", resp.Items[0].ProductName)
}

func TestList_EstadoInvalido(t *testing.T) {
	f := buildFixture()
	_, err := f.uc.List("", "Enviada", 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

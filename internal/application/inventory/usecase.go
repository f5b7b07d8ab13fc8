package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/almacen-api/internal/application/dto"
	"github.com/dcastano/almacen-api/internal/domain"
	"github.com/dcastano/almacen-api/internal/domain/entity"
	"github.com/dcastano/almacen-api/internal/domain/repository"
	"github.com/dcastano/almacen-api/pkg/textutil"
)

// RegisterMovementUseCase registra movimientos de inventario de forma
// transaccional (In/Out) con bloqueo de fila (SELECT FOR UPDATE) y
// Commit/Rollback. Es el único camino por el que cambia StockQuantity.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	ProductID string
	Type      entity.MovementType
	Quantity  int64 // siempre positivo; el signo lo aporta Type
	Notes     string
}

// RegisterMovement inicia una transacción, bloquea la fila del producto,
// valida que la cantidad resultante no sea negativa, actualiza la cantidad y
// agrega el registro inmutable al libro. Si la salida dejaría el stock en
// negativo devuelve ErrInsufficientStock y no persiste nada.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*dto.MovementResponse, error) {
	if in.ProductID == "" || !in.Type.IsValid() || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	// Validación de existencia fuera de la tx (solo lectura)
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var mov *entity.StockMovement
	var newQty int64

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		m, qty, err := uc.ApplyInTx(movRepo, productRepo, in.ProductID, in.Type, in.Quantity, in.Notes, now)
		if err != nil {
			return err
		}
		mov = m
		newQty = qty
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.MovementResponse{
		ID:            mov.ID,
		ProductID:     mov.ProductID,
		Type:          string(mov.Type),
		Quantity:      mov.Quantity,
		Notes:         mov.Notes,
		CreatedAt:     mov.CreatedAt,
		StockQuantity: newQty,
	}, nil
}

// ApplyInTx aplica un movimiento usando los repositorios proporcionados
// (misma transacción del caller). Lo usa RegisterMovement y también el caso
// de uso de órdenes de venta para descontar/reponer stock dentro de su
// propia transacción. Bloquea la fila del producto, verifica no-negatividad
// antes de aplicar y agrega el registro al libro. Devuelve el movimiento
// creado y la cantidad resultante del producto.
func (uc *RegisterMovementUseCase) ApplyInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	productID string,
	movType entity.MovementType,
	quantity int64,
	notes string,
	now time.Time,
) (*entity.StockMovement, int64, error) {
	// Bloquea la fila del producto (SELECT FOR UPDATE) para evitar
	// condiciones de carrera entre ajustes concurrentes
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, 0, err
	}
	if product == nil {
		return nil, 0, domain.ErrNotFound
	}

	newQty := product.StockQuantity + quantity*movType.Sign()
	if newQty < 0 {
		return nil, 0, domain.ErrInsufficientStock
	}
	if err := productRepo.UpdateStock(productID, newQty); err != nil {
		return nil, 0, err
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Quantity:  quantity,
		Type:      movType,
		Notes:     notes,
		CreatedAt: now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, 0, err
	}
	return mov, newQty, nil
}

// List lista movimientos filtrando por nombre de producto (coincidencia
// parcial, insensible a mayúsculas y tildes), más recientes primero.
func (uc *RegisterMovementUseCase) List(filter string, limit, offset int) (*dto.MovementListResponse, error) {
	rows, err := uc.movementRepo.Search(textutil.FoldSearch(filter), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.MovementListItem{
			ID:          r.Movement.ID,
			ProductID:   r.Movement.ProductID,
			ProductName: r.ProductName,
			Type:        string(r.Movement.Type),
			Quantity:    r.Movement.Quantity,
			Notes:       r.Movement.Notes,
			CreatedAt:   r.Movement.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

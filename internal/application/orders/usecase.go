package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/almacen-api/internal/application/dto"
	"github.com/dcastano/almacen-api/internal/application/inventory"
	"github.com/dcastano/almacen-api/internal/domain"
	"github.com/dcastano/almacen-api/internal/domain/entity"
	"github.com/dcastano/almacen-api/internal/domain/repository"
	"github.com/dcastano/almacen-api/pkg/textutil"
)

// SaleOrderUseCase ciclo de vida de órdenes de venta con reserva de stock:
// crear descuenta stock (movimiento Out), cancelar lo repone (movimiento In)
// y completar solo cambia el estado. Crear y cancelar tocan el libro;
// completar no — el descuento ya ocurrió al crear.
type SaleOrderUseCase struct {
	txRunner    TxRunner
	inventoryUC *inventory.RegisterMovementUseCase
	orderRepo   repository.SaleOrderRepository
	productRepo repository.ProductRepository
}

// NewSaleOrderUseCase construye el caso de uso.
func NewSaleOrderUseCase(
	txRunner TxRunner,
	inventoryUC *inventory.RegisterMovementUseCase,
	orderRepo repository.SaleOrderRepository,
	productRepo repository.ProductRepository,
) *SaleOrderUseCase {
	return &SaleOrderUseCase{
		txRunner:    txRunner,
		inventoryUC: inventoryUC,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// Create crea una orden en estado Pending, congela el precio total
// (precio × cantidad al momento de crear) y descuenta el stock de inmediato
// registrando un movimiento Out que referencia la orden. Todo en una
// transacción: si no hay stock suficiente no queda orden ni movimiento.
func (uc *SaleOrderUseCase) Create(ctx context.Context, in dto.CreateSaleOrderRequest) (*dto.SaleOrderResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var order *entity.SaleOrder

	err := uc.txRunner.RunOrder(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.SaleOrderRepository,
	) error {
		// Bloquea la fila del producto: la verificación de stock y el
		// descuento deben ser atómicos frente a creaciones concurrentes
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.StockQuantity < in.Quantity {
			return domain.ErrInsufficientStock
		}

		order = &entity.SaleOrder{
			ID:         uuid.New().String(),
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
			TotalPrice: product.Price.Mul(decimal.NewFromInt(in.Quantity)),
			Status:     entity.OrderPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		// Descuento inmediato (modelo de reserva), con referencia a la orden
		notes := fmt.Sprintf("Orden de venta #%s", order.ID)
		_, _, err = uc.inventoryUC.ApplyInTx(movRepo, productRepo, in.ProductID, entity.MovementOut, in.Quantity, notes, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toSaleOrderResponse(order), nil
}

// Cancel pasa una orden Pending a Cancelled y repone el stock con un
// movimiento In que referencia la orden cancelada, en una sola transacción.
// Orden inexistente -> ErrNotFound; orden no Pending -> ErrInvalidTransition
// sin cambio de estado (cancelar dos veces no repone dos veces).
func (uc *SaleOrderUseCase) Cancel(ctx context.Context, orderID string) (*dto.SaleOrderResponse, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var order *entity.SaleOrder

	err := uc.txRunner.RunOrder(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.SaleOrderRepository,
	) error {
		o, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if !o.Status.CanTransitionTo(entity.OrderCancelled) {
			return domain.ErrInvalidTransition
		}

		o.Status = entity.OrderCancelled
		o.UpdatedAt = now
		if err := orderRepo.UpdateStatus(o); err != nil {
			return err
		}

		// Reposición simétrica al descuento hecho en la creación
		notes := fmt.Sprintf("Orden de venta cancelada #%s", o.ID)
		if _, _, err := uc.inventoryUC.ApplyInTx(movRepo, productRepo, o.ProductID, entity.MovementIn, o.Quantity, notes, now); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleOrderResponse(order), nil
}

// Complete pasa una orden Pending a Completed. No toca el inventario:
// el stock ya se descontó al crear la orden.
func (uc *SaleOrderUseCase) Complete(ctx context.Context, orderID string) (*dto.SaleOrderResponse, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var order *entity.SaleOrder

	err := uc.txRunner.RunOrder(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		orderRepo repository.SaleOrderRepository,
	) error {
		o, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if !o.Status.CanTransitionTo(entity.OrderCompleted) {
			return domain.ErrInvalidTransition
		}
		o.Status = entity.OrderCompleted
		o.UpdatedAt = now
		if err := orderRepo.UpdateStatus(o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleOrderResponse(order), nil
}

// GetByID obtiene una orden por ID.
func (uc *SaleOrderUseCase) GetByID(orderID string) (*dto.SaleOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toSaleOrderResponse(order), nil
}

// List lista órdenes filtrando por nombre de producto y opcionalmente por
// estado (vacío = todos).
func (uc *SaleOrderUseCase) List(filter, status string, limit, offset int) (*dto.SaleOrderListResponse, error) {
	st := entity.OrderStatus(status)
	if status != "" && !st.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.orderRepo.Search(textutil.FoldSearch(filter), st, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleOrderListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.SaleOrderListItem{
			SaleOrderResponse: *toSaleOrderResponse(&r.Order),
			ProductName:       r.ProductName,
		})
	}
	return &dto.SaleOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toSaleOrderResponse(o *entity.SaleOrder) *dto.SaleOrderResponse {
	if o == nil {
		return nil
	}
	return &dto.SaleOrderResponse{
		ID:         o.ID,
		ProductID:  o.ProductID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

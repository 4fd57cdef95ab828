package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-warehouse-admin/internal/apperr"
	"go-warehouse-admin/internal/model"
	"go-warehouse-admin/internal/repository"
	"go-warehouse-admin/internal/ws"
	"go-warehouse-admin/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MovementRequest is one BUY or SELL event against a product's stock.
// Price is optional; zero or negative falls back to the product's
// buy or sell price at the time of the call.
type MovementRequest struct {
	ProductID uuid.UUID          `json:"product_id" validate:"uuid_required"`
	Type      model.MovementType `json:"type" validate:"required,oneof=BUY SELL"`
	Quantity  int                `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal    `json:"price"`
}

// MovementResult reports the stock quantity after the movement and the
// transaction that recorded it.
type MovementResult struct {
	Quantity    int                `json:"quantity"`
	Transaction *model.Transaction `json:"transaction"`
}

// LedgerService is the single gate for inventory changes: every quantity
// mutation is paired with exactly one appended Transaction and one activity
// log entry, or none of the three.
type LedgerService interface {
	ApplyMovement(req *MovementRequest) (*MovementResult, error)
}

type ledgerService struct {
	db        *gorm.DB
	stockRepo repository.StockRepository
	txnRepo   repository.TransactionRepository
	logRepo   repository.ActivityLogRepository
	wsHub     *ws.Hub
}

func NewLedgerService(
	db *gorm.DB,
	stockRepo repository.StockRepository,
	txnRepo repository.TransactionRepository,
	logRepo repository.ActivityLogRepository,
	hub *ws.Hub,
) LedgerService {
	return &ledgerService{
		db:        db,
		stockRepo: stockRepo,
		txnRepo:   txnRepo,
		logRepo:   logRepo,
		wsHub:     hub,
	}
}

func (s *ledgerService) ApplyMovement(req *MovementRequest) (*MovementResult, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.Validation("Validation failed: Field '%s' failed on tag '%s'",
			firstErr.Field, firstErr.Tag)
	}

	var result *MovementResult
	var product model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product not found")
			}
			return apperr.Persistence(err)
		}

		delta := req.Quantity
		if req.Type == model.MovementSell {
			delta = -req.Quantity
		}

		// The bounds check rides in the statement itself and the new
		// quantity comes back from the same statement, so a concurrent
		// movement can neither drive the value negative nor skew the
		// quantities recorded in the activity log.
		var newQuantity int
		if req.Type == model.MovementBuy {
			// First BUY creates the stock row; the upsert makes create
			// and increment indistinguishable to concurrent callers.
			quantity, err := s.stockRepo.AddQuantity(tx, product.ID, req.Quantity)
			if err != nil {
				return apperr.Persistence(err)
			}
			newQuantity = quantity
		} else {
			quantity, affected, err := s.stockRepo.ApplyDelta(tx, product.ID, delta)
			if err != nil {
				return apperr.Persistence(err)
			}
			if affected == 0 {
				if _, err := s.stockRepo.FindByProductID(tx, product.ID); errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.InsufficientStock("no stock record found for this product")
				} else if err != nil {
					return apperr.Persistence(err)
				}
				return apperr.InsufficientStock("insufficient stock")
			}
			newQuantity = quantity
		}
		oldQuantity := newQuantity - delta

		unitPrice := req.Price
		if unitPrice.LessThanOrEqual(decimal.Zero) {
			if req.Type == model.MovementBuy {
				unitPrice = product.BuyPrice
			} else {
				unitPrice = product.SellPrice
			}
		}

		txn := &model.Transaction{
			ProductID: product.ID,
			Type:      req.Type,
			Quantity:  req.Quantity,
			Price:     unitPrice,
			Total:     unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
			Currency:  product.Currency,
		}
		if err := s.txnRepo.Create(tx, txn); err != nil {
			return apperr.Persistence(err)
		}

		action := model.ActionStockAdd
		if req.Type == model.MovementSell {
			action = model.ActionStockReduce
		}
		details, _ := json.Marshal(map[string]interface{}{
			"product_name": product.Name,
			"quantity":     req.Quantity,
			"old_quantity": oldQuantity,
			"new_quantity": newQuantity,
			"type":         req.Type,
		})
		entry := &model.ActivityLog{
			Action:     action,
			EntityType: "stock",
			EntityID:   product.ID.String(),
			Details:    string(details),
		}
		if err := s.logRepo.Create(tx, entry); err != nil {
			return apperr.Persistence(err)
		}

		result = &MovementResult{Quantity: newQuantity, Transaction: txn}
		return nil
	})

	if err != nil {
		var appErr *apperr.Error
		if !errors.As(err, &appErr) {
			err = apperr.Persistence(err)
		}
		return nil, err
	}

	if s.wsHub != nil {
		go s.wsHub.Publish(ws.Event{
			Type:   "stock_update",
			Action: "movement_applied",
			Payload: map[string]interface{}{
				"product_id":   product.ID,
				"product_name": product.Name,
				"type":         req.Type,
				"quantity":     req.Quantity,
				"new_quantity": result.Quantity,
			},
			Message: fmt.Sprintf("%s %d units of '%s' (%s)",
				movementVerb(req.Type), req.Quantity, product.Name, req.Type),
		})
	}

	return result, nil
}

func movementVerb(t model.MovementType) string {
	if t == model.MovementSell {
		return "Removed"
	}
	return "Added"
}

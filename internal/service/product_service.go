package service

import (
	"encoding/json"
	"errors"

	"go-warehouse-admin/internal/apperr"
	"go-warehouse-admin/internal/model"
	"go-warehouse-admin/internal/repository"
	"go-warehouse-admin/internal/ws"
	"go-warehouse-admin/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService owns the product lifecycle: create (with its paired stock
// row at quantity 0), update, soft delete, recover, and the permanent delete
// path that cascades the stock and transaction rows away.
type ProductService interface {
	Create(req *model.Product) error
	Update(id uuid.UUID, req *model.Product) (*model.Product, error)
	List(filter repository.ProductFilter) ([]model.Product, int64, error)
	Get(id uuid.UUID) (*model.Product, error)
	SoftDelete(id uuid.UUID) (*model.Product, error)
	Recover(id uuid.UUID) (*model.Product, error)
	PermanentDelete(id uuid.UUID) error
}

type productService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	txnRepo     repository.TransactionRepository
	logRepo     repository.ActivityLogRepository
	wsHub       *ws.Hub
}

func NewProductService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	txnRepo repository.TransactionRepository,
	logRepo repository.ActivityLogRepository,
	hub *ws.Hub,
) ProductService {
	return &productService{
		db:          db,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		txnRepo:     txnRepo,
		logRepo:     logRepo,
		wsHub:       hub,
	}
}

func (s *productService) Create(req *model.Product) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return apperr.Validation("Validation failed: Field '%s' failed on tag '%s'",
			firstErr.Field, firstErr.Tag)
	}
	if req.Currency == "" {
		req.Currency = model.CurrencyIQD
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, req); err != nil {
			return err
		}
		// Stock row rides along from day one so the ledger always has a
		// row to move against.
		stock := &model.Stock{
			ProductID:        req.ID,
			Quantity:         0,
			MinAlertQuantity: model.DefaultMinAlertQuantity,
		}
		if err := s.stockRepo.Create(tx, stock); err != nil {
			return err
		}
		return s.writeLog(tx, model.ActionCreate, req.ID, map[string]interface{}{
			"name":  req.Name,
			"model": req.Model,
		})
	})
	if err != nil {
		return apperr.Persistence(err)
	}

	s.broadcast("product_created", req)
	return nil
}

func (s *productService) Update(id uuid.UUID, req *model.Product) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Persistence(err)
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Model != "" {
		existing.Model = req.Model
	}
	if req.CategoryID != uuid.Nil {
		existing.CategoryID = req.CategoryID
		existing.Category = nil
	}
	if !req.BuyPrice.IsZero() {
		existing.BuyPrice = req.BuyPrice
	}
	if !req.SellPrice.IsZero() {
		existing.SellPrice = req.SellPrice
	}
	if req.Currency != "" {
		existing.Currency = req.Currency
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, apperr.Persistence(err)
	}
	if err := s.writeLog(nil, model.ActionUpdate, id, map[string]interface{}{
		"name":  existing.Name,
		"model": existing.Model,
	}); err != nil {
		return nil, err
	}

	s.broadcast("product_updated", existing)
	return existing, nil
}

func (s *productService) List(filter repository.ProductFilter) ([]model.Product, int64, error) {
	products, total, err := s.productRepo.FindAll(filter)
	if err != nil {
		return nil, 0, apperr.Persistence(err)
	}
	return products, total, nil
}

func (s *productService) Get(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Persistence(err)
	}
	return product, nil
}

func (s *productService) SoftDelete(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.SoftDelete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Persistence(err)
	}
	if err := s.writeLog(nil, model.ActionDelete, id, map[string]interface{}{
		"name": product.Name,
	}); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Recover(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.Recover(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Persistence(err)
	}
	if err := s.writeLog(nil, model.ActionRecover, id, map[string]interface{}{
		"name": product.Name,
	}); err != nil {
		return nil, err
	}
	return product, nil
}

// PermanentDelete removes the product together with its stock and
// transaction history. Irreversible; the activity log keeps the only trace.
func (s *productService) PermanentDelete(id uuid.UUID) error {
	product, err := s.productRepo.FindByIDUnscoped(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("product not found")
		}
		return apperr.Persistence(err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.stockRepo.DeleteByProductID(tx, id); err != nil {
			return err
		}
		if err := s.txnRepo.DeleteByProductID(tx, id); err != nil {
			return err
		}
		if err := s.productRepo.PermanentDelete(tx, id); err != nil {
			return err
		}
		return s.writeLog(tx, model.ActionPermanentDelete, id, map[string]interface{}{
			"name": product.Name,
		})
	})
	if err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

func (s *productService) writeLog(tx *gorm.DB, action string, id uuid.UUID, details map[string]interface{}) error {
	payload, _ := json.Marshal(details)
	entry := &model.ActivityLog{
		Action:     action,
		EntityType: "product",
		EntityID:   id.String(),
		Details:    string(payload),
	}
	if err := s.logRepo.Create(tx, entry); err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

func (s *productService) broadcast(action string, product *model.Product) {
	if s.wsHub == nil {
		return
	}
	go s.wsHub.Publish(ws.Event{
		Type:   "stock_update",
		Action: action,
		Payload: map[string]interface{}{
			"id":    product.ID,
			"name":  product.Name,
			"model": product.Model,
		},
	})
}

package service

import (
	"encoding/json"
	"errors"

	"go-warehouse-admin/internal/apperr"
	"go-warehouse-admin/internal/model"
	"go-warehouse-admin/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionService reads the append-only movement log and exposes the
// administrative delete. Deleting a transaction erases the record of a
// movement that already happened to inventory: the paired stock quantity is
// deliberately left untouched, and the full payload is preserved in the
// activity log.
type TransactionService interface {
	List(filter repository.TransactionFilter) ([]model.Transaction, int64, error)
	Get(id uuid.UUID) (*model.Transaction, error)
	Delete(id uuid.UUID) error
}

type transactionService struct {
	txnRepo repository.TransactionRepository
	logRepo repository.ActivityLogRepository
}

func NewTransactionService(txnRepo repository.TransactionRepository, logRepo repository.ActivityLogRepository) TransactionService {
	return &transactionService{txnRepo: txnRepo, logRepo: logRepo}
}

func (s *transactionService) List(filter repository.TransactionFilter) ([]model.Transaction, int64, error) {
	txns, total, err := s.txnRepo.FindAll(filter)
	if err != nil {
		return nil, 0, apperr.Persistence(err)
	}
	return txns, total, nil
}

func (s *transactionService) Get(id uuid.UUID) (*model.Transaction, error) {
	txn, err := s.txnRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("transaction not found")
		}
		return nil, apperr.Persistence(err)
	}
	return txn, nil
}

func (s *transactionService) Delete(id uuid.UUID) error {
	txn, err := s.txnRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("transaction not found")
		}
		return apperr.Persistence(err)
	}

	if err := s.txnRepo.Delete(id); err != nil {
		return apperr.Persistence(err)
	}

	payload, _ := json.Marshal(txn)
	entry := &model.ActivityLog{
		Action:     model.ActionDelete,
		EntityType: "transaction",
		EntityID:   id.String(),
		Details:    string(payload),
	}
	if err := s.logRepo.Create(nil, entry); err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

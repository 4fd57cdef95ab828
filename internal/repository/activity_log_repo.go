package repository

import (
	"go-warehouse-admin/internal/model"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(tx *gorm.DB, entry *model.ActivityLog) error
	FindAll(page, pageSize int) ([]model.ActivityLog, int64, error)
}

type activityLogRepo struct {
	db *gorm.DB
}

func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db}
}

func (r *activityLogRepo) Create(tx *gorm.DB, entry *model.ActivityLog) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(entry).Error
}

func (r *activityLogRepo) FindAll(page, pageSize int) ([]model.ActivityLog, int64, error) {
	var logs []model.ActivityLog
	var total int64

	if err := r.db.Model(&model.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	err := r.db.Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&logs).Error
	return logs, total, err
}

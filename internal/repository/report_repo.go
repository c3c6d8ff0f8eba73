package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/osint_go_server/internal/model"
)

var ErrReportNotFound = errors.New("report not found")

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create 新增报告记录
func (r *ReportRepository) Create(report *model.Report) error {
	return r.db.Create(report).Error
}

// GetByID 按 ID 查询
func (r *ReportRepository) GetByID(id int64) (*model.Report, error) {
	var report model.Report
	err := r.db.Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

// List 分页查询，按创建时间倒序，name 非空时做模糊匹配
func (r *ReportRepository) List(page, pageSize int, name string) ([]*model.Report, int64, error) {
	var reports []*model.Report
	var total int64

	query := r.db.Model(&model.Report{})
	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// Delete 删除报告记录
func (r *ReportRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Report{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

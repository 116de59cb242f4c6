package repositories

import (
	"context"
	"errors"

	"ormakal.in/configs/configslog"
	"ormakal.in/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ICondolenceRepository is the Condolence Store.
type ICondolenceRepository interface {
	Create(ctx context.Context, condolence *models.Condolence) error
	FindByID(ctx context.Context, id string) (*models.Condolence, error)
	// FindApprovedByObituaryID returns approved condolences, most recent first.
	FindApprovedByObituaryID(ctx context.Context, obituaryID string) ([]models.Condolence, error)
	FindAll(ctx context.Context) ([]models.Condolence, error)
	// Approve sets is_approved = true. Approving an approved condolence is not an error.
	Approve(ctx context.Context, id string) error
}

// CondolenceRepository implements ICondolenceRepository on GORM.
type CondolenceRepository struct {
	db *gorm.DB
}

// NewCondolenceRepository creates a repository bound to db.
func NewCondolenceRepository(db *gorm.DB) ICondolenceRepository {
	return &CondolenceRepository{db: db}
}

// NewCondolenceRepositoryTx creates a repository bound to an open transaction.
func NewCondolenceRepositoryTx(tx *gorm.DB) ICondolenceRepository {
	return &CondolenceRepository{db: tx}
}

func (r *CondolenceRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *CondolenceRepository) Create(ctx context.Context, condolence *models.Condolence) error {
	if condolence == nil {
		return errors.New("condolence to create cannot be nil")
	}
	if condolence.ObituaryID == "" {
		return errors.New("condolence must reference an obituary")
	}
	return r.getDB(ctx).Create(condolence).Error
}

func (r *CondolenceRepository) FindByID(ctx context.Context, id string) (*models.Condolence, error) {
	if !models.IsValidID(id) {
		return nil, ErrNotFound
	}
	var condolence models.Condolence
	err := r.getDB(ctx).First(&condolence, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CondolenceRepository.FindByID: DB error", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &condolence, nil
}

func (r *CondolenceRepository) FindApprovedByObituaryID(ctx context.Context, obituaryID string) ([]models.Condolence, error) {
	if !models.IsValidID(obituaryID) {
		return nil, errors.New("invalid obituary id")
	}
	var condolences []models.Condolence
	err := r.getDB(ctx).
		Where("obituary_id = ? AND is_approved = ?", obituaryID, true).
		Order("created_at desc").
		Find(&condolences).Error
	if err != nil {
		configslog.Log.Error("CondolenceRepository.FindApprovedByObituaryID: DB error", zap.String("obituaryID", obituaryID), zap.Error(err))
		return nil, err
	}
	return condolences, nil
}

func (r *CondolenceRepository) FindAll(ctx context.Context) ([]models.Condolence, error) {
	var condolences []models.Condolence
	if err := r.getDB(ctx).Order("created_at desc").Find(&condolences).Error; err != nil {
		configslog.Log.Error("CondolenceRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return condolences, nil
}

func (r *CondolenceRepository) Approve(ctx context.Context, id string) error {
	if !models.IsValidID(id) {
		return ErrNotFound
	}
	db := r.getDB(ctx)

	result := db.Model(&models.Condolence{}).Where("id = ?", id).Update("is_approved", true)
	if result.Error != nil {
		configslog.Log.Error("CondolenceRepository.Approve: DB error", zap.String("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := db.Model(&models.Condolence{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrNotFound
		}
		configslog.SLog.Debugf("CondolenceRepository.Approve: no rows changed for %s (already approved)", id)
	}
	return nil
}

var _ ICondolenceRepository = (*CondolenceRepository)(nil)

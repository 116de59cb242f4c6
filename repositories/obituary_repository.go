package repositories

import (
	"context"
	"errors"

	"ormakal.in/configs/configslog"
	"ormakal.in/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IObituaryRepository is the Obituary Store.
type IObituaryRepository interface {
	FindActive(ctx context.Context) (*models.Obituary, error)
	FindByID(ctx context.Context, id string) (*models.Obituary, error)
	FindAll(ctx context.Context) ([]models.Obituary, error)
	Create(ctx context.Context, obituary *models.Obituary) error
	// Activate marks id as the active obituary and deactivates every other one.
	Activate(ctx context.Context, id string) error
}

// ObituaryRepository implements IObituaryRepository on GORM.
type ObituaryRepository struct {
	db *gorm.DB
}

// NewObituaryRepository creates a repository bound to db.
func NewObituaryRepository(db *gorm.DB) IObituaryRepository {
	return &ObituaryRepository{db: db}
}

// NewObituaryRepositoryTx creates a repository bound to an open transaction.
func NewObituaryRepositoryTx(tx *gorm.DB) IObituaryRepository {
	return &ObituaryRepository{db: tx}
}

func (r *ObituaryRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindActive returns the obituary with is_active = true, or ErrNotFound.
func (r *ObituaryRepository) FindActive(ctx context.Context) (*models.Obituary, error) {
	var obituary models.Obituary
	err := r.getDB(ctx).Where("is_active = ?", true).Order("updated_at desc").First(&obituary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ObituaryRepository.FindActive: DB error", zap.Error(err))
		return nil, err
	}
	return &obituary, nil
}

// FindByID returns the obituary with the given id, or ErrNotFound.
func (r *ObituaryRepository) FindByID(ctx context.Context, id string) (*models.Obituary, error) {
	if !models.IsValidID(id) {
		return nil, ErrNotFound
	}
	var obituary models.Obituary
	err := r.getDB(ctx).First(&obituary, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ObituaryRepository.FindByID: DB error", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &obituary, nil
}

// FindAll returns every obituary, newest first.
func (r *ObituaryRepository) FindAll(ctx context.Context) ([]models.Obituary, error) {
	var obituaries []models.Obituary
	if err := r.getDB(ctx).Order("created_at desc").Find(&obituaries).Error; err != nil {
		configslog.Log.Error("ObituaryRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return obituaries, nil
}

// Create inserts a new obituary. IsActive is stored as given; use Activate to make it current.
func (r *ObituaryRepository) Create(ctx context.Context, obituary *models.Obituary) error {
	if obituary == nil {
		return errors.New("obituary to create cannot be nil")
	}
	return r.getDB(ctx).Create(obituary).Error
}

// Activate runs in one transaction so readers never observe two active rows.
func (r *ObituaryRepository) Activate(ctx context.Context, id string) error {
	if !models.IsValidID(id) {
		return ErrNotFound
	}
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Obituary{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		if err := tx.Model(&models.Obituary{}).
			Where("id <> ? AND is_active = ?", id, true).
			Update("is_active", false).Error; err != nil {
			configslog.Log.Error("ObituaryRepository.Activate: deactivate others failed", zap.String("id", id), zap.Error(err))
			return err
		}

		if err := tx.Model(&models.Obituary{}).Where("id = ?", id).Update("is_active", true).Error; err != nil {
			configslog.Log.Error("ObituaryRepository.Activate: activate failed", zap.String("id", id), zap.Error(err))
			return err
		}
		return nil
	})
}

var _ IObituaryRepository = (*ObituaryRepository)(nil)

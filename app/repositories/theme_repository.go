package repositories

import (
	"context"
	"errors"

	"github.com/rahmatd/go-storefront/app/models"
	"gorm.io/gorm"
)

type ThemeRepository interface {
	// GetOrCreateByStore returns the store's theme, creating one with default
	// sections when the store has none yet.
	GetOrCreateByStore(ctx context.Context, store *models.Store) (*models.StoreTheme, error)
	Update(ctx context.Context, theme *models.StoreTheme) error
}

type gormThemeRepository struct {
	db *gorm.DB
}

func NewThemeRepository(db *gorm.DB) ThemeRepository {
	return &gormThemeRepository{db: db}
}

func (r *gormThemeRepository) GetOrCreateByStore(ctx context.Context, store *models.Store) (*models.StoreTheme, error) {
	var theme models.StoreTheme
	err := r.db.WithContext(ctx).
		Where("store_id = ?", store.ID).
		First(&theme).Error
	if err == nil {
		if len(theme.Sections) == 0 {
			theme.Sections = models.DefaultSections(store.Name)
			if err := r.db.WithContext(ctx).Save(&theme).Error; err != nil {
				return nil, err
			}
		}
		return &theme, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	theme = models.StoreTheme{
		StoreID:         store.ID,
		Sections:        models.DefaultSections(store.Name),
		PrimaryColor:    "#007bff",
		SecondaryColor:  "#6c757d",
		BackgroundColor: "#ffffff",
		TextColor:       "#212529",
		FontFamily:      "Arial, sans-serif",
		LayoutWidth:     models.LayoutWidthBoxed,
	}
	if err := r.db.WithContext(ctx).Create(&theme).Error; err != nil {
		return nil, err
	}
	return &theme, nil
}

func (r *gormThemeRepository) Update(ctx context.Context, theme *models.StoreTheme) error {
	return r.db.WithContext(ctx).Save(theme).Error
}

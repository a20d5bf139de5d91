package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
)

type SuggestionRepository struct {
	db *gorm.DB
}

func NewSuggestionRepository(db *gorm.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// Upsert records one occurrence of a search term, incrementing popularity on
// repeat searches.
func (r *SuggestionRepository) Upsert(ctx context.Context, suggestion *entity.SearchSuggestion) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "term"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"popularity": gorm.Expr("popularity + 1")}),
	}).Create(suggestion).Error
}

// TopMatching returns the most popular stored terms containing the query.
func (r *SuggestionRepository) TopMatching(ctx context.Context, query string, limit int) ([]entity.SearchSuggestion, error) {
	var suggestions []entity.SearchSuggestion
	err := r.db.WithContext(ctx).
		Where("term LIKE ?", "%"+query+"%").
		Order("popularity DESC").Limit(limit).
		Find(&suggestions).Error
	return suggestions, err
}

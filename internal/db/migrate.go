package db

import (
	"github.com/app789plates/plates-backend/internal/app/model"
	"github.com/app789plates/plates-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Plate{},
		&model.PriceHistory{},
		&model.PatternMembership{},
		&model.LikedPlate{},
		&model.SavedPlate{},
		&model.LikedStore{},
		&model.SavedStore{},
		&model.PlateTransfer{},
		&model.Rating{},
		&model.Hashtag{},
		&model.PlateHashtag{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

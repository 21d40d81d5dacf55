package service

import (
	"errors"
	"fmt"
	"math/rand"

	"bilelaskri123/shop-api/internal/model"
	"bilelaskri123/shop-api/pkg/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SeedDemoData makes sure an admin account exists and fills an empty
// catalogue with demo products. Used behind the --seed flag for local
// development
func SeedDemoData(db *gorm.DB, argon *security.ArgonHash) error {
	var admin model.User

	err := db.Where("role = ?", model.RoleAdmin).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := argon.GenerateFromPassword("changeme")
		if err != nil {
			return err
		}

		id, err := gonanoid.Generate(idCharset, 16)
		if err != nil {
			return err
		}

		admin = model.User{
			ID:           id,
			Username:     "admin",
			Email:        "admin@example.com",
			PasswordHash: hash,
			Role:         model.RoleAdmin,
			Verified:     true,
		}

		if err := db.Create(&admin).Error; err != nil {
			return err
		}

		zap.L().Warn("Created default admin account, change its password",
			zap.String("email", admin.Email))
	} else if err != nil {
		return err
	}

	return seedProducts(db, admin.ID)
}

func seedProducts(db *gorm.DB, adminID string) error {
	var count int64
	if err := db.Model(model.Product{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		zap.L().Info("Catalogue already has products, skipping seed")
		return nil
	}

	products := make([]model.Product, 0, 100)
	for i := 1; i <= 100; i++ {
		products = append(products, model.Product{
			Title:       fmt.Sprintf("product %d", i),
			Description: fmt.Sprintf("Description for product %d", i),
			Price:       float64(rand.Intn(500) + 10),
			UserID:      adminID,
		})
	}

	if err := db.Create(&products).Error; err != nil {
		return err
	}

	zap.L().Info("Seeded product catalogue", zap.Int("count", len(products)))
	return nil
}

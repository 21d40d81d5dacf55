package service

import (
	"time"

	"bilelaskri123/shop-api/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AccountCleanup automatically deletes accounts that were registered
// but never verified their email before the deadline
func AccountCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Account cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			var toCleanUserIds []string

			err := db.
				Model(model.User{}).
				Where("verified = ? AND expires_at < ?", false, time.Now()).
				Select("id").
				Find(&toCleanUserIds).
				Error
			if err != nil {
				zap.L().Error("Failed to query db for users to clean", zap.Error(err))
				continue
			}

			if len(toCleanUserIds) == 0 {
				continue
			}

			err = db.
				Where("id IN ?", toCleanUserIds).
				Delete(model.User{}).
				Error
			if err != nil {
				zap.L().Error("Failed to delete users from database", zap.Error(err))
				continue
			}

			zap.L().Debug("Account cleanup finished", zap.Int("removed", len(toCleanUserIds)))
		}
	}()
}

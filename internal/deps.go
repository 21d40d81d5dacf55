package internal

import (
	"bilelaskri123/shop-api/internal/service"
	"bilelaskri123/shop-api/pkg/security"

	"gorm.io/gorm"
)

// Deps bundles everything the handlers need. Built once in the router
// and passed through instead of globals.
type Deps struct {
	DB       *gorm.DB
	Argon    *security.ArgonHash
	Mail     service.Mailer
	Uploader *service.Uploader
}

package database

import (
	"event_planner/config"
	"event_planner/constants"
	"event_planner/helper"
	"event_planner/model"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SeedData creates the first super admin when one is configured and missing.
func SeedData(db *gorm.DB, seed config.SeedSettings, log zerolog.Logger) {
	email := seed.Email()
	if email == "" || seed.SuperAdminPassword == "" {
		log.Debug().Msg("no super admin configured, skipping seed")
		return
	}

	hash, err := helper.HashPassword(seed.SuperAdminPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash seed password")
		return
	}
	admin := model.User{
		Email:    email,
		Password: hash,
		FullName: "Super Admin",
		Role:     constants.ROLE_SUPER_ADMIN,
	}
	result := db.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin)
	if result.Error != nil {
		log.Error().Err(result.Error).Str("email", admin.Email).Msg("failed to seed super admin")
		return
	}
	if result.RowsAffected > 0 {
		log.Info().Str("email", admin.Email).Msg("seeded super admin")
	}
}

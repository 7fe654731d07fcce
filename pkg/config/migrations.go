package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/jmalone/microblog/backend/internal/models"
	"gorm.io/gorm"
)

// Migrate applies the schema. A fresh database gets the full current schema
// in one step; existing databases replay only the migrations they are
// missing, and every migration is reversible.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			// Direct messages: the messages table plus the read watermark
			// on users.
			ID: "202507231219_dms",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Migrator().CreateTable(&models.Message{}); err != nil {
					return err
				}
				return tx.Migrator().AddColumn(&models.User{}, "LastMessageReadTime")
			},
			Rollback: func(tx *gorm.DB) error {
				if err := tx.Migrator().DropColumn(&models.User{}, "LastMessageReadTime"); err != nil {
					return err
				}
				return tx.Migrator().DropTable(&models.Message{})
			},
		},
	})

	m.InitSchema(func(tx *gorm.DB) error {
		return tx.AutoMigrate(
			&models.User{},
			&models.Follow{},
			&models.Post{},
			&models.Message{},
			&models.Notification{},
		)
	})

	return m.Migrate()
}

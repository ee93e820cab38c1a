package migrations

import (
	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&docstore.DocumentRow{})
}

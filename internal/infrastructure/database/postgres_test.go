package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()+fmt.Sprint(time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return db
}

func TestAutoMigrateAndSeedAreRepeatable(t *testing.T) {
	db := setupTestDB(t)
	log := logger.Discard()

	if err := AutoMigrate(db, log); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := SeedDefaultData(db, log); err != nil {
			t.Fatalf("SeedDefaultData() run %d error = %v", i, err)
		}
	}

	var modes []entity.PaymentMode
	if err := db.Find(&modes).Error; err != nil {
		t.Fatalf("list modes: %v", err)
	}
	if len(modes) != len(DefaultPaymentModes()) {
		t.Errorf("got %d payment modes, want %d", len(modes), len(DefaultPaymentModes()))
	}

	cash := 0
	for _, m := range modes {
		if m.IsCash {
			cash++
		}
	}
	if cash != 1 {
		t.Errorf("expected exactly one cash mode, got %d", cash)
	}
}

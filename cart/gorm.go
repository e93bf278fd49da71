package cart

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/imamnura/mini-ecommerce-api/models"
)

// SnapshotRecord is the table row backing GormSnapshotStore: one row per
// snapshot name, holding the serialized snapshot.
type SnapshotRecord struct {
	Name      string `gorm:"primaryKey"`
	Data      []byte
	UpdatedAt time.Time
}

func (SnapshotRecord) TableName() string {
	return "cart_snapshots"
}

// GormSnapshotStore persists snapshots in a database table. Save is an
// upsert, so the row is always the full latest snapshot.
type GormSnapshotStore struct {
	db *gorm.DB
}

func NewGormSnapshotStore(db *gorm.DB) (*GormSnapshotStore, error) {
	if err := db.AutoMigrate(&SnapshotRecord{}); err != nil {
		return nil, err
	}
	return &GormSnapshotStore{db: db}, nil
}

func (g *GormSnapshotStore) Save(name string, snap *models.CartSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	rec := SnapshotRecord{Name: name, Data: data, UpdatedAt: time.Now()}
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&rec).Error
}

func (g *GormSnapshotStore) Load(name string) (*models.CartSnapshot, error) {
	var rec SnapshotRecord
	if err := g.db.First(&rec, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var snap models.CartSnapshot
	if err := json.Unmarshal(rec.Data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

package history

import (
	"context"

	"github.com/travigo/modeadvisor/pkg/ctdf"
	"gorm.io/gorm"
)

type SQLiteStore struct {
	DB *gorm.DB
}

func NewSQLiteStore(db *gorm.DB) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}

	return &SQLiteStore{DB: db}, nil
}

func (s *SQLiteStore) Add(ctx context.Context, record *Record) error {
	record.ID = 0

	return s.DB.WithContext(ctx).Create(record).Error
}

func (s *SQLiteStore) List(ctx context.Context, feature ctdf.Feature, limit int) ([]Record, error) {
	records := []Record{}

	query := s.DB.WithContext(ctx).Order("id desc").Limit(limit)
	if feature != "" {
		query = query.Where("feature = ?", feature)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	return s.DB.WithContext(ctx).Delete(&Record{}, id).Error
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Record{}).Error
}

package database

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	tmbconfig "github.com/strem2jelly/telegram-media-bridge/internal/config"
)

// Store is the persistence surface used by the rest of the
// application.
type Store interface {
	RecordDownload(ctx context.Context, telegramID int64, username, fileName, filePath string) error
	History(ctx context.Context, telegramID int64, limit int) ([]DownloadRecord, error)
}

type Database struct {
	db *gorm.DB
}

func NewDatabase() *Database {
	return &Database{}
}

func (d *Database) Init(config *tmbconfig.Config) error {
	dbPath := filepath.Join(config.MediaPath, "bridge.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	d.db = db

	if err := d.db.AutoMigrate(&User{}, &DownloadRecord{}); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	logrus.Info("Database initialized successfully")
	return nil
}

func (d *Database) getOrCreateUser(ctx context.Context, telegramID int64, username string) (User, error) {
	var user User
	result := d.db.WithContext(ctx).
		Where(User{TelegramID: telegramID}).
		Attrs(User{Username: username}).
		FirstOrCreate(&user)
	if result.Error != nil {
		return User{}, result.Error
	}
	return user, nil
}

// RecordDownload appends one record for a completed download. Called
// exactly once per success, never on failure or cancellation.
func (d *Database) RecordDownload(ctx context.Context, telegramID int64, username, fileName, filePath string) error {
	user, err := d.getOrCreateUser(ctx, telegramID, username)
	if err != nil {
		return fmt.Errorf("failed to resolve user: %w", err)
	}

	record := DownloadRecord{
		FileName: fileName,
		FilePath: filePath,
		UserID:   user.ID,
	}
	if result := d.db.WithContext(ctx).Create(&record); result.Error != nil {
		return fmt.Errorf("failed to record download: %w", result.Error)
	}
	return nil
}

// History returns the user's most recent downloads, newest first.
func (d *Database) History(ctx context.Context, telegramID int64, limit int) ([]DownloadRecord, error) {
	var user User
	result := d.db.WithContext(ctx).Where(User{TelegramID: telegramID}).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	var records []DownloadRecord
	query := d.db.WithContext(ctx).Where("user_id = ?", user.ID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if result := query.Find(&records); result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

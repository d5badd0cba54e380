package database

import "time"

type User struct {
	ID         uint  `gorm:"primarykey"`
	TelegramID int64 `gorm:"uniqueIndex"`
	Username   string
	CreatedAt  time.Time
}

// DownloadRecord is appended once per successfully completed download.
type DownloadRecord struct {
	ID        uint `gorm:"primarykey"`
	FileName  string
	FilePath  string
	UserID    uint
	User      User
	CreatedAt time.Time
}

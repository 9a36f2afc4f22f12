package db

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/prepwise/interview-coach/internal/chat"
	"github.com/prepwise/interview-coach/internal/logger"
)

// Connect opens the single long-lived gorm handle and migrates the schema.
// A DSN of the form user:pass@tcp(host:port)/name selects MySQL; anything
// else is treated as a SQLite file path.
func Connect(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.Contains(dsn, "@tcp(") {
		dialector = mysql.Open(dsn)
	} else {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		dialector = sqlite.Open(dsn)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(&chat.Session{}, &chat.Message{}, &chat.InputHistory{}); err != nil {
		return nil, err
	}

	logger.Log.WithField("dialect", gdb.Dialector.Name()).Info("database connected")
	return gdb, nil
}

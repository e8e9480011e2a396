package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database. Album is skipped because
// SQLite has no array columns.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, model := range Migrations {
		if _, ok := model.(*entity.Album); ok {
			continue
		}
		require.NoError(t, db.AutoMigrate(model))
	}
	return db
}

func seedUsers(t *testing.T, db *gorm.DB, n int) []entity.User {
	t.Helper()

	users := make([]entity.User, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, entity.User{
			ID:          fmt.Sprintf("user-%02d", i),
			DisplayName: fmt.Sprintf("Member %d", i),
			Role:        entity.RoleMember,
		})
	}
	require.NoError(t, db.Create(&users).Error)
	return users
}

func seedEvent(t *testing.T, db *gorm.DB, title string) *entity.Event {
	t.Helper()

	event, err := NewEventStorage(db).Create(context.Background(), &entity.Event{
		Title: title,
		Venue: "The Crown",
		Date:  time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	return event
}

package postgres

import (
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"gorm.io/gorm"
)

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Event{},
	&entity.EventParticipant{},
	&entity.Notification{},
	&entity.Post{},
	&entity.Comment{},
	&entity.Result{},
	&entity.Album{},
}

// deleteByID deletes the row with the given id and reports gorm.ErrRecordNotFound when there was none.
func deleteByID(db *gorm.DB, model interface{}, id string) error {
	res := db.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

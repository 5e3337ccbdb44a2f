package models

import (
	"errors"
	"fmt"

	"github.com/jinzhu/gorm"
)

// A Guild models the Discord server a preset or a job belongs to.
type Guild struct {
	ID   string `gorm:"primary_key"`
	Name string
}

func (g Guild) String() string {
	return fmt.Sprintf("Guild{id=%v, name=%v}", g.ID, g.Name)
}

// BeforeSave is executed just before a Guild is saved into the DB
func (g *Guild) BeforeSave() error {
	if g.ID == "" {
		return errors.New("missing guild ID")
	}
	if g.Name == "" {
		return errors.New("guild name can't be empty")
	}
	return nil
}

// FindOrCreateGuild returns the guild with given ID, creating it on first
// use. created is true when a new row was inserted.
func FindOrCreateGuild(db *gorm.DB, id, name string) (g Guild, created bool, err error) {
	err = db.Where("id = ?", id).First(&g).Error
	if gorm.IsRecordNotFoundError(err) {
		g = Guild{ID: id, Name: name}
		err = db.Create(&g).Error
		return g, err == nil, err
	}
	return g, false, err
}

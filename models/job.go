package models

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
)

// A Job records one thresholded image.
type Job struct {
	gorm.Model
	GuildID   string `gorm:"index"`
	DiscordID string
	Source    string
	Settings  Settings `gorm:"embedded"`
	Level     float64
	Width     int
	Height    int
	Bytes     int
	Elapsed   time.Duration
}

func (j Job) String() string {
	return fmt.Sprintf("%s (%dx%d) %s -> %.1f", j.Source, j.Width, j.Height, j.Settings, j.Level)
}

// Create inserts the job in the DB.
func (j *Job) Create(db *gorm.DB) error {
	return db.Create(j).Error
}

// ListJobs returns the most recent jobs of a guild, newest first. Jobs sent
// in direct messages have no guild: only discordID's own are listed then.
func ListJobs(db *gorm.DB, guildID, discordID string, limit int) (jobs []Job, err error) {
	q := db.Where("guild_id = ?", guildID)
	if guildID == "" {
		q = q.Where("discord_id = ?", discordID)
	}
	err = q.Order("id desc").Limit(limit).Find(&jobs).Error
	return
}

package models

import "github.com/jinzhu/gorm"

// A Preset stores the settings a Discord user last selected in a guild.
type Preset struct {
	gorm.Model
	GuildID   string   `gorm:"unique_index:idx_preset_owner"`
	DiscordID string   `gorm:"unique_index:idx_preset_owner"`
	Settings  Settings `gorm:"embedded"`
}

// FindPreset finds the preset of a user within a guild.
func FindPreset(db *gorm.DB, guildID, discordID string) (*Preset, error) {
	p := Preset{}
	err := db.Where("guild_id = ?", guildID).Where("discord_id = ?", discordID).First(&p).Error
	return &p, err
}

// LoadSettings returns the saved settings of a user, or defaults if the user
// never saved any.
func LoadSettings(db *gorm.DB, guildID, discordID string, defaults Settings) (Settings, error) {
	p, err := FindPreset(db, guildID, discordID)
	if gorm.IsRecordNotFoundError(err) {
		return defaults, nil
	} else if err != nil {
		return defaults, err
	}
	return p.Settings, nil
}

// Save creates or updates the preset of its user.
func (p *Preset) Save(db *gorm.DB) error {
	existing, err := FindPreset(db, p.GuildID, p.DiscordID)
	if gorm.IsRecordNotFoundError(err) {
		return db.Create(p).Error
	} else if err != nil {
		return err
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	return db.Table("presets").Where("id = ?", p.ID).Updates(
		map[string]interface{}{
			"method":    p.Settings.Method,
			"threshold": p.Settings.Threshold,
			"format":    p.Settings.Format,
		}).Error
}

// DeletePreset forgets a user's settings.
func DeletePreset(db *gorm.DB, guildID, discordID string) error {
	return db.Unscoped().
		Where("guild_id = ?", guildID).
		Where("discord_id = ?", discordID).
		Delete(Preset{}).Error
}

package models

import (
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArnaudCalmettes/seuil/imp"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Every connection to ":memory:" is a distinct database.
	db.DB().SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&Guild{}, &Preset{}, &Job{}).Error)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestFindOrCreateGuild(t *testing.T) {
	db := openDB(t)

	g, created, err := FindOrCreateGuild(db, "42", "Forge")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Forge", g.Name)

	g, created, err = FindOrCreateGuild(db, "42", "Renamed")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Forge", g.Name)

	_, _, err = FindOrCreateGuild(db, "43", "")
	assert.Error(t, err)
}

func TestPresets(t *testing.T) {
	db := openDB(t)

	s, err := LoadSettings(db, "g", "u", DefaultSettings)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings, s)

	p := Preset{GuildID: "g", DiscordID: "u", Settings: Settings{Method: "otsu", Threshold: 12, Format: "webp"}}
	require.NoError(t, p.Save(db))

	p2 := Preset{GuildID: "g", DiscordID: "u", Settings: Settings{Method: "binary", Threshold: 0, Format: "jpg"}}
	require.NoError(t, p2.Save(db))
	assert.Equal(t, p.ID, p2.ID)

	s, err = LoadSettings(db, "g", "u", DefaultSettings)
	require.NoError(t, err)
	assert.Equal(t, Settings{Method: "binary", Threshold: 0, Format: "jpg"}, s)

	// Other users and guilds are unaffected.
	s, err = LoadSettings(db, "other", "u", DefaultSettings)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings, s)

	require.NoError(t, DeletePreset(db, "g", "u"))
	_, err = FindPreset(db, "g", "u")
	assert.True(t, gorm.IsRecordNotFoundError(err))
}

func TestJobs(t *testing.T) {
	db := openDB(t)

	for i, src := range []string{"a.png", "b.png", "c.png"} {
		j := Job{
			GuildID:  "g",
			Source:   src,
			Settings: DefaultSettings,
			Level:    127,
			Width:    i + 1,
			Height:   1,
			Elapsed:  time.Millisecond,
		}
		require.NoError(t, j.Create(db))
	}
	require.NoError(t, (&Job{GuildID: "other", Source: "x.png"}).Create(db))

	jobs, err := ListJobs(db, "g", "", 2)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "c.png", jobs[0].Source)
	assert.Equal(t, "b.png", jobs[1].Source)
	assert.Equal(t, time.Millisecond, jobs[0].Elapsed)
	assert.Equal(t, DefaultSettings, jobs[0].Settings)
}

func TestListJobsDirectMessages(t *testing.T) {
	db := openDB(t)

	require.NoError(t, (&Job{DiscordID: "alice", Source: "alice.png"}).Create(db))
	require.NoError(t, (&Job{DiscordID: "bob", Source: "bob.png"}).Create(db))
	require.NoError(t, (&Job{GuildID: "g", DiscordID: "alice", Source: "guild.png"}).Create(db))

	jobs, err := ListJobs(db, "", "bob", 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "bob.png", jobs[0].Source)

	// Within a guild, everyone's jobs are listed.
	jobs, err = ListJobs(db, "g", "bob", 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "guild.png", jobs[0].Source)
}

func TestSettingsResolve(t *testing.T) {
	cfg, f, err := DefaultSettings.Resolve()
	require.NoError(t, err)
	assert.Equal(t, imp.DefaultConfig, cfg)
	assert.Equal(t, imp.PNG, f)

	cfg, _, err = Settings{Method: "adaptive", Threshold: 300, Format: "webp"}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 255, cfg.Threshold)

	_, _, err = Settings{Method: "nope", Format: "png"}.Resolve()
	assert.Error(t, err)
	_, _, err = Settings{Method: "binary", Format: "bmp"}.Resolve()
	assert.Error(t, err)
}

func TestSettingsMerge(t *testing.T) {
	zero := 0
	assert.True(t, Override{}.IsZero())
	assert.Equal(t, DefaultSettings, DefaultSettings.Merge(Override{}))

	got := DefaultSettings.Merge(Override{Method: "otsu", Threshold: &zero})
	assert.Equal(t, Settings{Method: "otsu", Threshold: 0, Format: "png"}, got)
}

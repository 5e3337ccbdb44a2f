package cmd

import (
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ArnaudCalmettes/seuil/models"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Perform automatic database migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		return migrateDB(db)
	},
}

func openDB() (*gorm.DB, error) {
	db, err := gorm.Open("sqlite3", viper.GetString("db"))
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open database %q", viper.GetString("db"))
	}
	return db, nil
}

func migrateDB(db *gorm.DB) error {
	log.Debug().Str("db", viper.GetString("db")).Msg("migrating database")
	return db.AutoMigrate(
		&models.Guild{},
		&models.Preset{},
		&models.Job{},
	).Error
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

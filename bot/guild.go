package bot

import (
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/jinzhu/gorm"

	"github.com/ArnaudCalmettes/seuil/models"
)

func createGuild(ctx *exrouter.Context) error {
	guild, err := ctx.Guild(ctx.Msg.GuildID)
	if err != nil {
		return err
	}

	return transaction(ctx, func(tx *gorm.DB) error {
		g, created, err := models.FindOrCreateGuild(tx, guild.ID, guild.Name)
		if err != nil {
			return err
		}
		if created {
			sendInfo(ctx, "Thresholding is now available on **", g.Name, "**. Use the `help` command to get started.")
		}
		return nil
	})
}

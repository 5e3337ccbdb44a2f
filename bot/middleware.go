package bot

import (
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/jinzhu/gorm"
	"github.com/rs/zerolog/log"
)

// Log a received message event
func logMsg(s *discordgo.Session, m *discordgo.Message) {
	ev := log.Info().Str("component", "bot").
		Str("guild_id", m.GuildID).
		Str("channel_id", m.ChannelID).
		Int("attachments", len(m.Attachments)).
		Str("content", m.Content)
	if m.Author != nil {
		ev = ev.Str("author", m.Author.Username)
	}
	if s.State != nil {
		if guild, err := s.State.Guild(m.GuildID); err == nil {
			ev = ev.Str("guild", guild.Name)
		}
	}
	ev.Msg("command received")
}

// Middleware that logs processed messages
func logMiddleware(fn exrouter.HandlerFunc) exrouter.HandlerFunc {
	return func(ctx *exrouter.Context) {
		logMsg(ctx.Ses, ctx.Msg)
		if fn != nil {
			fn(ctx)
		}
	}
}

// Middleware that adds the database to commands' context.
func dbMiddleware(db *gorm.DB) exrouter.MiddlewareFunc {
	return func(fn exrouter.HandlerFunc) exrouter.HandlerFunc {
		return func(ctx *exrouter.Context) {
			ctx.Set("db", db)
			if fn != nil {
				fn(ctx)
			}
		}
	}
}

// Middleware that ensures the Discord guild is registered in the DB.
// Direct messages have no guild and go through untouched.
func guildInitMiddleware(fn exrouter.HandlerFunc) exrouter.HandlerFunc {
	return func(ctx *exrouter.Context) {
		if ctx.Msg.GuildID != "" {
			if err := createGuild(ctx); err != nil {
				internalError(ctx, err)
				return
			}
		}

		if fn != nil {
			fn(ctx)
		}
	}
}

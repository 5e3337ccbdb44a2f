package bot

import (
	"context"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ArnaudCalmettes/seuil/imp"
	"github.com/ArnaudCalmettes/seuil/input"
	"github.com/ArnaudCalmettes/seuil/models"
)

// Options configures the bot.
type Options struct {
	Token       string
	Prefix      string
	Defaults    models.Settings
	Limits      input.Limits
	Workers     int
	Timeout     time.Duration
	Encode      []imp.EncodeOption
	OCRLanguage string
	HTTPClient  *http.Client
}

// DefaultOptions returns options suitable for most deployments, save for
// the token.
func DefaultOptions() Options {
	return Options{
		Prefix:      ".",
		Defaults:    models.DefaultSettings,
		Limits:      input.DefaultLimits,
		Workers:     runtime.NumCPU(),
		Timeout:     30 * time.Second,
		OCRLanguage: input.DefaultLanguage,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

type service struct {
	ctx  context.Context
	opts Options
}

func newRouter(db *gorm.DB, s *service) *exrouter.Route {
	router := exrouter.New()

	router.Group(func(r *exrouter.Route) {
		r.Use(logMiddleware)
		r.Use(dbMiddleware(db))
		r.Use(guildInitMiddleware)
		r.On("threshold", s.threshold).Desc("threshold attached images: [method] [threshold] [format] (alias: t)").Alias("t")
		r.On("read", s.read).Desc("threshold an attached image and read its text (alias: ocr)").Alias("ocr")
		r.On("methods", listMethods).Desc("list thresholding methods (alias: m)").Alias("m")
	})

	router.On("settings", func(*exrouter.Context) {}).Group(func(r *exrouter.Route) {
		r.Use(logMiddleware)
		r.Use(dbMiddleware(db))
		r.Use(guildInitMiddleware)
		r.On("show", s.showSettings).Desc("show your current settings (alias: ls)").Alias("ls")
		r.On("method", s.updateSettings("<method>", overrideMethod)).Desc("set your default method")
		r.On("threshold", s.updateSettings("<0-255>", overrideLevel)).Desc("set your default threshold (alias: level)").Alias("level")
		r.On("format", s.updateSettings("<png|jpg|webp>", overrideFormat)).Desc("set your download format")
		r.On("reset", s.resetSettings).Desc("go back to the default settings")
	}).Desc("handle your settings (alias: s)").Alias("s")

	router.On("history", func(*exrouter.Context) {}).Group(func(r *exrouter.Route) {
		r.Use(logMiddleware)
		r.Use(dbMiddleware(db))
		r.On("list", listHistory).Desc("list recently processed images (alias: ls)").Alias("ls")
		r.On("export", exportHistory).Desc("export the history to a csv file")
	}).Desc("history of processed images (alias: hist)").Alias("hist")

	router.Default = router.On("help", func(ctx *exrouter.Context) {
		var f func(depth int, r *exrouter.Route) string
		f = func(depth int, r *exrouter.Route) string {
			text := ""
			for _, v := range r.Routes {
				text += strings.Repeat("  ", depth) + v.Name + ": " + v.Description + "\n"
				text += f(depth+1, &exrouter.Route{Route: v})
			}
			return text
		}
		ctx.Reply("```" + f(0, router) + "```")
	}).Desc("print this help menu (aliases: [h])").Alias("h")

	return router
}

// Run runs the bot until ctx is done.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	dg, err := discordgo.New("Bot " + opts.Token)
	if err != nil {
		return errors.Wrap(err, "couldn't create Discord session")
	}

	router := newRouter(db, &service{ctx: ctx, opts: opts})

	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot {
			return
		}
		router.FindAndExecute(s, opts.Prefix, s.State.User.ID, m.Message)
	})

	if err := dg.Open(); err != nil {
		return errors.Wrap(err, "error opening connection")
	}
	// Cleanly close down the Discord session.
	defer dg.Close()

	log.Info().Str("component", "bot").Str("prefix", opts.Prefix).Msg("Up & running")
	<-ctx.Done()
	log.Info().Str("component", "bot").Msg("shutting down")
	return nil
}

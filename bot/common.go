package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/jinzhu/gorm"
	"github.com/rs/zerolog/log"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

var errNoDB = errors.New("couldn't get DB from context")

// React with a poopy (indicate failure)
func markPoop(ctx *exrouter.Context) {
	ctx.Ses.MessageReactionAdd(ctx.Msg.ChannelID, ctx.Msg.ID, "💩")
}

// React with a thumbs up (indicate success)
func markOk(ctx *exrouter.Context) {
	ctx.Ses.MessageReactionAdd(ctx.Msg.ChannelID, ctx.Msg.ID, "👍")
}

// Report an error
func sendError(ctx *exrouter.Context, err error) error {
	ctx.Reply("📛 ", err)
	return err
}

// Report an information
func sendInfo(ctx *exrouter.Context, args ...interface{}) {
	ctx.Reply("ℹ️  ", fmt.Sprint(args...))
}

// Report a warning
func sendWarning(ctx *exrouter.Context, args ...interface{}) {
	ctx.Reply("⚠️  ", fmt.Sprint(args...))
}

// Report an internal error
func internalError(ctx *exrouter.Context, err error) error {
	log.Error().Err(err).Str("component", "bot").Str("command", strings.Join(ctx.Args, " ")).Msg("internal error")
	sendError(ctx, fmt.Errorf("Internal error (`%v`)", err))
	return err
}

// Send correct command syntax
func sendUsage(ctx *exrouter.Context, syntax string) {
	sendWarning(ctx, fmt.Sprintf("syntax: `%s %s`", ctx.Args[0], syntax))
}

// Get database instance from the context
func getDB(ctx *exrouter.Context) (db *gorm.DB, err error) {
	db, _ = ctx.Get("db").(*gorm.DB)
	if db == nil {
		err = errNoDB
	}
	return
}

// Helper to execute a database transaction
func transaction(ctx *exrouter.Context, fn func(*gorm.DB) error) error {
	db, err := getDB(ctx)
	if err != nil {
		internalError(ctx, err)
		return err
	}
	return db.Transaction(fn)
}

// Find the candidate closest to name, in terms of edit distance
func findClosest(name string, candidates []string) (best string, score int) {
	score = len(name) + 1
	for _, c := range candidates {
		d := levenshtein.DistanceForStrings([]rune(name), []rune(c), levenshtein.DefaultOptions)
		if d < score {
			best = c
			score = d
		}
	}
	return
}

// Build an error for an unknown name, suggesting the closest candidate
func unknownName(kind, name string, candidates []string) error {
	best, score := findClosest(strings.ToLower(name), candidates)
	if best != "" && score <= maxSuggestionDistance {
		return fmt.Errorf("Unknown %s `%s` (did you mean `%s`?)", kind, name, best)
	}
	return fmt.Errorf("Unknown %s `%s` (expected one of `%s`)", kind, name, strings.Join(candidates, "`, `"))
}

const maxSuggestionDistance = 2

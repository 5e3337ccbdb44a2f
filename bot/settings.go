package bot

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/jinzhu/gorm"

	"github.com/ArnaudCalmettes/seuil/imp"
	"github.com/ArnaudCalmettes/seuil/models"
)

// Parse a threshold given by a user. Out of range values are rejected.
func parseLevel(arg string) (int, error) {
	level, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("Invalid threshold `%s`", arg)
	}
	if level < imp.MinLevel || level > imp.MaxLevel {
		return 0, fmt.Errorf("Threshold `%d` is out of range (%d-%d)", level, imp.MinLevel, imp.MaxLevel)
	}
	return level, nil
}

func parseMethod(arg string) (string, error) {
	m, err := imp.ParseMethod(arg)
	if err != nil {
		return "", unknownName("method", arg, imp.MethodNames())
	}
	return m.String(), nil
}

func parseFormat(arg string) (string, error) {
	f, err := imp.ParseFormat(arg)
	if err != nil {
		return "", unknownName("format", arg, imp.FormatNames())
	}
	return f.Extension(), nil
}

// Parse inline overrides, given in any order: a method name, a threshold
// and a format.
func parseOverride(args []string) (o models.Override, err error) {
	for _, arg := range args {
		if arg == "" {
			continue
		}
		if _, convErr := strconv.Atoi(arg); convErr == nil {
			if o.Threshold != nil {
				return o, fmt.Errorf("Threshold given twice (`%s`)", arg)
			}
			level, err := parseLevel(arg)
			if err != nil {
				return o, err
			}
			o.Threshold = &level
			continue
		}
		if f, err := imp.ParseFormat(arg); err == nil {
			if o.Format != "" {
				return o, fmt.Errorf("Format given twice (`%s`)", arg)
			}
			o.Format = f.Extension()
			continue
		}
		m, err := parseMethod(arg)
		if err != nil {
			return o, err
		}
		if o.Method != "" {
			return o, fmt.Errorf("Method given twice (`%s`)", arg)
		}
		o.Method = m
	}
	return o, nil
}

// Load the settings of the author of the message
func (s *service) loadSettings(ctx *exrouter.Context) (settings models.Settings, err error) {
	err = transaction(ctx, func(tx *gorm.DB) error {
		settings, err = models.LoadSettings(tx, ctx.Msg.GuildID, ctx.Msg.Author.ID, s.opts.Defaults)
		return err
	})
	return
}

func formatSettings(s models.Settings) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 5, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tTHRESHOLD\tFORMAT\t")
	fmt.Fprintf(w, "%s\t%d\t%s\t\n", s.Method, s.Threshold, s.Format)
	w.Flush()
	return "```" + b.String() + "```"
}

func (s *service) showSettings(ctx *exrouter.Context) {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		internalError(ctx, err)
		return
	}
	ctx.Reply(formatSettings(settings))
}

// Returns a handler that updates a single field of the author's preset
func (s *service) updateSettings(syntax string, parse func(string) (models.Override, error)) exrouter.HandlerFunc {
	return func(ctx *exrouter.Context) {
		if len(ctx.Args) != 2 {
			sendUsage(ctx, syntax)
			return
		}
		o, err := parse(ctx.Args[1])
		if err != nil {
			sendError(ctx, err)
			markPoop(ctx)
			return
		}

		err = transaction(ctx, func(tx *gorm.DB) error {
			settings, err := models.LoadSettings(tx, ctx.Msg.GuildID, ctx.Msg.Author.ID, s.opts.Defaults)
			if err != nil {
				return internalError(ctx, err)
			}
			p := models.Preset{
				GuildID:   ctx.Msg.GuildID,
				DiscordID: ctx.Msg.Author.ID,
				Settings:  settings.Merge(o),
			}
			if err := p.Save(tx); err != nil {
				return internalError(ctx, err)
			}
			return nil
		})
		if err == nil {
			markOk(ctx)
		}
	}
}

func overrideMethod(arg string) (o models.Override, err error) {
	o.Method, err = parseMethod(arg)
	return
}

func overrideLevel(arg string) (o models.Override, err error) {
	level, err := parseLevel(arg)
	if err != nil {
		return o, err
	}
	o.Threshold = &level
	return o, nil
}

func overrideFormat(arg string) (o models.Override, err error) {
	o.Format, err = parseFormat(arg)
	return
}

func (s *service) resetSettings(ctx *exrouter.Context) {
	err := transaction(ctx, func(tx *gorm.DB) error {
		if err := models.DeletePreset(tx, ctx.Msg.GuildID, ctx.Msg.Author.ID); err != nil {
			return internalError(ctx, err)
		}
		return nil
	})
	if err == nil {
		markOk(ctx)
	}
}

// List available methods
func listMethods(ctx *exrouter.Context) {
	ctx.Reply("```" + methodTable() + "```")
}

func methodTable() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 5, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION\t")
	for _, m := range imp.Methods {
		fmt.Fprintf(w, "%s\t%s\t\n", m, m.Description())
	}
	w.Flush()
	return b.String()
}

package bot

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/jinzhu/gorm"
	"github.com/rs/zerolog/log"

	"github.com/ArnaudCalmettes/seuil/imp"
	"github.com/ArnaudCalmettes/seuil/input"
	"github.com/ArnaudCalmettes/seuil/metrics"
	"github.com/ArnaudCalmettes/seuil/models"
)

const callerBot = "bot"

// Resolve the settings of a command: the author's preset, overridden by the
// command's arguments.
func (s *service) resolve(ctx *exrouter.Context) (models.Settings, imp.Config, imp.Format, error) {
	o, err := parseOverride(ctx.Args[1:])
	if err != nil {
		return models.Settings{}, imp.Config{}, 0, err
	}
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return settings, imp.Config{}, 0, err
	}
	if !o.IsZero() {
		settings = settings.Merge(o)
	}
	cfg, format, err := settings.Resolve()
	return settings, cfg, format, err
}

// Download an attachment and threshold it
func (s *service) process(att *discordgo.MessageAttachment, cfg imp.Config, format imp.Format) (*imp.Buffer, *imp.Result, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.Timeout)
	defer cancel()

	src, err := input.Fetch(ctx, s.opts.HTTPClient, att.URL, s.opts.Limits)
	if err != nil {
		return nil, nil, err
	}
	res, err := imp.Export(ctx, src, cfg, format, s.opts.Workers, s.opts.Encode...)
	metrics.ObserveApply(callerBot, cfg.Method.String(), elapsedOf(res), err)
	if err != nil {
		return src, nil, err
	}
	metrics.ObserveEncode(format.String(), len(res.Data))
	return src, res, nil
}

// Threshold every attached image and send the results back
func (s *service) threshold(ctx *exrouter.Context) {
	if len(ctx.Msg.Attachments) == 0 {
		sendUsage(ctx, "[method] [threshold] [format] (with attached images)")
		return
	}
	settings, cfg, format, err := s.resolve(ctx)
	if err != nil {
		sendError(ctx, err)
		markPoop(ctx)
		return
	}

	failed := 0
	for _, att := range ctx.Msg.Attachments {
		src, res, err := s.process(att, cfg, format)
		if err != nil {
			failed++
			sendWarning(ctx, fmt.Sprintf("Couldn't process `%s`: `%s`", att.Filename, err))
			continue
		}

		_, err = ctx.Ses.ChannelMessageSendComplex(ctx.Msg.ChannelID, resultMessage(att.Filename, cfg, res))
		if err != nil {
			failed++
			internalError(ctx, err)
			continue
		}

		job := models.Job{
			GuildID:   ctx.Msg.GuildID,
			DiscordID: ctx.Msg.Author.ID,
			Source:    att.Filename,
			Settings:  settings,
			Level:     res.Level,
			Width:     src.Width,
			Height:    src.Height,
			Bytes:     len(res.Data),
			Elapsed:   res.Elapsed,
		}
		transaction(ctx, func(tx *gorm.DB) error {
			if err := job.Create(tx); err != nil {
				log.Warn().Err(err).Str("component", "bot").Msg("couldn't record job")
			}
			return nil
		})
	}

	if failed == 0 {
		markOk(ctx)
	} else {
		markPoop(ctx)
	}
}

// Threshold the attached image and read its text
func (s *service) read(ctx *exrouter.Context) {
	if len(ctx.Msg.Attachments) != 1 {
		sendUsage(ctx, "[method] [threshold] (with one attached image)")
		return
	}
	_, cfg, _, err := s.resolve(ctx)
	if err != nil {
		sendError(ctx, err)
		markPoop(ctx)
		return
	}

	att := ctx.Msg.Attachments[0]
	_, res, err := s.process(att, cfg, imp.PNG)
	if err != nil {
		sendWarning(ctx, fmt.Sprintf("Couldn't process `%s`: `%s`", att.Filename, err))
		markPoop(ctx)
		return
	}

	txt, err := input.Text(res.Buffer, s.opts.OCRLanguage)
	if err != nil {
		internalError(ctx, err)
		return
	}
	if txt == "" {
		sendWarning(ctx, "No text found in `", att.Filename, "`")
		return
	}
	ctx.Reply("```" + truncate(txt, maxReplyText) + "```")
}

// Build the reply carrying a thresholded image
func resultMessage(source string, cfg imp.Config, res *imp.Result) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content: fmt.Sprintf("`%s` (%s, level %.1f)", source, cfg.Method.Title(), res.Level),
		Files: []*discordgo.File{{
			Name:        res.Filename(),
			ContentType: res.Format.MIMEType(),
			Reader:      bytes.NewReader(res.Data),
		}},
	}
}

func elapsedOf(res *imp.Result) time.Duration {
	if res == nil {
		return 0
	}
	return res.Elapsed
}

// Discord refuses messages longer than 2000 characters
const maxReplyText = 1900

func truncate(txt string, max int) string {
	r := []rune(txt)
	if len(r) <= max {
		return txt
	}
	return string(r[:max]) + "…"
}

package bot

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/jinzhu/gorm"

	"github.com/ArnaudCalmettes/seuil/models"
)

const (
	historyListSize   = 10
	historyExportSize = 1000
)

func getJobs(ctx *exrouter.Context, limit int) (jobs []models.Job, err error) {
	err = transaction(ctx, func(tx *gorm.DB) error {
		jobs, err = models.ListJobs(tx, ctx.Msg.GuildID, ctx.Msg.Author.ID, limit)
		if err != nil {
			internalError(ctx, err)
		}
		return err
	})
	return
}

// List the most recent jobs of the guild
func listHistory(ctx *exrouter.Context) {
	jobs, err := getJobs(ctx, historyListSize)
	if err != nil {
		return
	}
	if len(jobs) == 0 {
		sendWarning(ctx, "No image was processed here yet")
		return
	}
	ctx.Reply("```" + historyTable(jobs) + "```")
}

func historyTable(jobs []models.Job) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 5, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tSIZE\tMETHOD\tLEVEL\tFORMAT\tTIME\t")
	for _, j := range jobs {
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%.1f\t%s\t%s\t\n",
			j.Source, j.Width, j.Height, j.Settings.Method, j.Level, j.Settings.Format,
			j.Elapsed.Round(time.Millisecond),
		)
	}
	w.Flush()
	return b.String()
}

// Export the guild's history as a csv file
func exportHistory(ctx *exrouter.Context) {
	jobs, err := getJobs(ctx, historyExportSize)
	if err != nil {
		return
	}

	var b bytes.Buffer
	if err := writeHistoryCSV(&b, jobs); err != nil {
		internalError(ctx, err)
		return
	}

	ctx.Ses.ChannelFileSend(ctx.Msg.ChannelID, "history.csv", &b)
}

func writeHistoryCSV(out io.Writer, jobs []models.Job) error {
	w := csv.NewWriter(out)
	w.Write([]string{"Date", "User", "Source", "Width", "Height", "Method", "Threshold", "Level", "Format", "Bytes", "Milliseconds"})
	for _, j := range jobs {
		w.Write([]string{
			j.CreatedAt.UTC().Format(time.RFC3339),
			j.DiscordID,
			j.Source,
			strconv.Itoa(j.Width),
			strconv.Itoa(j.Height),
			j.Settings.Method,
			strconv.Itoa(j.Settings.Threshold),
			strconv.FormatFloat(j.Level, 'f', 2, 64),
			j.Settings.Format,
			strconv.Itoa(j.Bytes),
			strconv.FormatInt(j.Elapsed.Milliseconds(), 10),
		})
	}
	w.Flush()
	return w.Error()
}

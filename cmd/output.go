package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/s0up4200/dlyt/dlyt"
	"github.com/s0up4200/dlyt/textutil"
)

var stdout io.Writer = os.Stdout

// printResult writes v as indented JSON when --json is set, otherwise calls human
func printResult(v any, human func(w io.Writer)) error {
	if jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	}
	human(stdout)
	return nil
}

func formatDuration(seconds int64) string {
	return (time.Duration(seconds) * time.Second).String()
}

func formatDate(raw string) string {
	t := dlyt.ParseTimestamp(raw)
	if t.IsZero() {
		return raw
	}
	return t.Format("2006-01-02 15:04")
}

func printPagination(w io.Writer, p dlyt.Pagination) {
	fmt.Fprintf(w, "\nPage %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
}

func printVideo(w io.Writer, v dlyt.Video) {
	fmt.Fprintf(w, "• [%s/%s] %s\n", v.SourceSite, v.VideoID, v.Title)
	if v.ChannelTitle != "" {
		fmt.Fprintf(w, "  Channel: %s\n", v.ChannelTitle)
	}
	if v.DurationSec > 0 {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(v.DurationSec))
	}
	if v.PublishedAt != nil && *v.PublishedAt != "" {
		fmt.Fprintf(w, "  Published: %s\n", formatDate(*v.PublishedAt))
	}
	if v.AudioURL != "" {
		fmt.Fprintf(w, "  Audio: %s\n", v.AudioURL)
	}
}

func printTTSRecord(w io.Writer, r dlyt.TTSRecord) {
	fmt.Fprintf(w, "• #%d %s (%d chars, %s)\n", r.ID, textutil.Truncate(r.TextPreview, 60, "…"), r.CharCount, r.Speaker)
	fmt.Fprintf(w, "  Created: %s\n", formatDate(r.CreatedAt))
	if r.AudioURL != "" {
		fmt.Fprintf(w, "  Audio: %s\n", r.AudioURL)
	}
}

func printPackages(w io.Writer, packages []dlyt.Package) {
	if len(packages) == 0 {
		fmt.Fprintln(w, "No packages.")
		return
	}
	for _, p := range packages {
		fmt.Fprintf(w, "• %s\n", p.PackageName)
		fmt.Fprintf(w, "  Transcription: %d of %d chars left\n", p.RemainASRChars, p.QuotaASRChars)
		fmt.Fprintf(w, "  Speech: %d of %d chars left\n", p.RemainTTSChars, p.QuotaTTSChars)
		if p.ExpireAt != nil && *p.ExpireAt != "" {
			fmt.Fprintf(w, "  Expires: %s\n", formatDate(*p.ExpireAt))
		}
	}
}

func printUsage(w io.Writer, days []dlyt.UsageDay) {
	if len(days) == 0 {
		fmt.Fprintln(w, "No usage recorded.")
		return
	}
	var asr, tts, requests int64
	fmt.Fprintf(w, "%-12s %10s %10s %9s\n", "DATE", "ASR", "TTS", "REQUESTS")
	fmt.Fprintln(w, strings.Repeat("-", 44))
	for _, d := range days {
		fmt.Fprintf(w, "%-12s %10d %10d %9d\n", d.Date, d.ASRChars, d.TTSChars, d.Requests)
		asr += d.ASRChars
		tts += d.TTSChars
		requests += d.Requests
	}
	fmt.Fprintln(w, strings.Repeat("-", 44))
	fmt.Fprintf(w, "%-12s %10d %10d %9d\n", "TOTAL", asr, tts, requests)
}

func printProfile(w io.Writer, p *dlyt.Profile) {
	if !p.Exists {
		fmt.Fprintln(w, "No account found for this identity.")
		return
	}
	fmt.Fprintf(w, "Identity: %s\n", p.Identity)
	if p.DisplayName != "" {
		fmt.Fprintf(w, "Name: %s\n", p.DisplayName)
	}
	fmt.Fprintf(w, "Status: %d\n", p.Status)
	if p.VoiceID != "" {
		fmt.Fprintf(w, "Voice: %s\n", p.VoiceID)
	}
}

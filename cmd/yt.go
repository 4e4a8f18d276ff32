package cmd

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/dlyt/dlyt"
	"github.com/s0up4200/dlyt/notify"
)

var (
	ytPlatform   string
	ytTargetLang string
	ytAudioOut   string
)

// ytCmd groups video commands
var ytCmd = &cobra.Command{
	Use:   "yt",
	Short: "Fetch video metadata and transcripts",
}

var infoCmd = &cobra.Command{
	Use:   "info <id-or-url>",
	Short: "Show video metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := client.Info(cmd.Context(), dlyt.MediaRequest{
			IDOrURL:  args[0],
			Platform: ytPlatform,
		})
		if err != nil {
			return err
		}
		return printResult(info, func(w io.Writer) {
			fmt.Fprintf(w, "%s\n", info.Title)
			fmt.Fprintf(w, "- ID: %s\n", info.ID)
			if info.Author != "" {
				fmt.Fprintf(w, "- Author: %s\n", info.Author)
			}
			fmt.Fprintf(w, "- Duration: %s\n", formatDuration(info.DurationSec))
			fmt.Fprintf(w, "- Views: %d\n", info.Views)
			if info.PublishDate != "" {
				fmt.Fprintf(w, "- Published: %s\n", info.PublishDate)
			}
			if info.ThumbnailURL != "" {
				fmt.Fprintf(w, "- Thumbnail: %s\n", info.ThumbnailURL)
			}
		})
	},
}

var textCmd = &cobra.Command{
	Use:   "text <id-or-url>",
	Short: "Fetch the transcript, optionally translated",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := client.Text(cmd.Context(), dlyt.MediaRequest{
			IDOrURL:    args[0],
			Platform:   ytPlatform,
			TargetLang: ytTargetLang,
		})
		if err != nil {
			return err
		}

		if ytAudioOut != "" {
			if err := writeAudio(ytAudioOut, text.AudioData); err != nil {
				return err
			}
			sink.Notify(fmt.Sprintf("Audio saved to %s", ytAudioOut), notify.KindSuccess)
		}

		return printResult(text, func(w io.Writer) {
			fmt.Fprintln(w, text.OriginalText)
			if text.TranslatedText != "" {
				fmt.Fprintf(w, "\n--- %s ---\n%s\n", ytTargetLang, text.TranslatedText)
			}
		})
	},
}

// writeAudio decodes base64 audio, accepting a data: URL prefix
func writeAudio(path, data string) error {
	if data == "" {
		return fmt.Errorf("the server returned no audio")
	}
	if i := strings.Index(data, ";base64,"); i >= 0 {
		data = data[i+len(";base64,"):]
	}
	audio, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return fmt.Errorf("failed to decode audio: %w", err)
	}
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return fmt.Errorf("failed to write audio: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(ytCmd)
	ytCmd.AddCommand(infoCmd, textCmd)

	ytCmd.PersistentFlags().StringVar(&ytPlatform, "platform", "", "platform hint, e.g. youtube or bilibili")
	textCmd.Flags().StringVar(&ytTargetLang, "target-lang", "", "translate the transcript to this language")
	textCmd.Flags().StringVar(&ytAudioOut, "audio-out", "", "write synthesized audio to this file")
}

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/dlyt/dlyt"
	"github.com/s0up4200/dlyt/filter"
)

var (
	historyPage    int
	historySize    int
	historyFilter  string
	historyPreset  string
	historySpeaker string
)

// historyCmd groups history commands
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse processed videos and speech synthesis records",
	Long: `Browse processed videos and speech synthesis records.

Results of the current page can be narrowed with --filter or a named --preset
from the config file. Expressions see the record's fields, for example:

  dlyt history tts --filter 'Chars > 1000 and daysSince(Created) < 7'
  dlyt history videos --filter 'Site == "youtube" and icontains(Title, "golang")'`,
}

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List processed videos",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := historyFilterFor()
		if err != nil {
			return err
		}

		page, err := client.ListVideos(cmd.Context(), dlyt.PageParams(historyPage, historySize))
		if err != nil {
			return err
		}
		page.Items = filter.Apply(f, page.Items)

		return printResult(page, func(w io.Writer) {
			if len(page.Items) == 0 {
				fmt.Fprintln(w, "No videos found.")
				return
			}
			for _, v := range page.Items {
				printVideo(w, v)
			}
			printPagination(w, page.Pagination)
		})
	},
}

var videoCmd = &cobra.Command{
	Use:   "video <site> <id>",
	Short: "Show one processed video",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		video, err := client.GetVideo(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return printResult(video, func(w io.Writer) {
			printVideo(w, *video)
			if video.Description != "" {
				fmt.Fprintf(w, "\n%s\n", video.Description)
			}
		})
	},
}

var ttsCmd = &cobra.Command{
	Use:   "tts",
	Short: "List speech synthesis records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := historyFilterFor()
		if err != nil {
			return err
		}

		params := dlyt.PageParams(historyPage, historySize)
		if historySpeaker != "" {
			params["speaker"] = historySpeaker
		}

		page, err := client.ListTTS(cmd.Context(), params)
		if err != nil {
			return err
		}
		page.Items = filter.Apply(f, page.Items)

		return printResult(page, func(w io.Writer) {
			if len(page.Items) == 0 {
				fmt.Fprintln(w, "No synthesis records found.")
				return
			}
			for _, r := range page.Items {
				printTTSRecord(w, r)
			}
			printPagination(w, page.Pagination)
		})
	},
}

func historyFilterFor() (filter.Filter, error) {
	f, err := filters.Resolve(historyPreset, historyFilter)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	if f == nil {
		return nil, nil
	}
	logger.Debug().Str("filter", f.Expression()).Msg("Filtering history")
	return f, nil
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(videosCmd, videoCmd, ttsCmd)

	for _, c := range []*cobra.Command{videosCmd, ttsCmd} {
		c.Flags().IntVar(&historyPage, "page", 1, "page number")
		c.Flags().IntVar(&historySize, "size", 20, "page size")
		c.Flags().StringVarP(&historyFilter, "filter", "f", "", "filter expression")
		c.Flags().StringVarP(&historyPreset, "preset", "p", "", "use a preset filter from config")
	}
	ttsCmd.Flags().StringVar(&historySpeaker, "speaker", "", "only records for this speaker")
}

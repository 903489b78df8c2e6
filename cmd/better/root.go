package main

import (
	"github.com/spf13/cobra"

	"better/internal/workflow"
)

type rootFlags struct {
	config    string
	logLevel  string
	logFormat string

	announce        string
	transcode       bool
	noTranscode     bool
	makeTorrent     int
	noTorrent       bool
	formats         string
	cores           int
	torrentOutput   string
	transcodeOutput string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	ctx := newCommandContext(&flags.config, &flags.logLevel, &flags.logFormat)

	rootCmd := &cobra.Command{
		Use:   "better [flags] ALBUM...",
		Short: "Transcode albums and create torrents in one command",
		Long: "Transcode lossless albums into lossy formats and create .torrent files for the results.\n" +
			"Defaults come from the configuration file; flags override them.",
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, ctx, flags.overrides(cmd), args)
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&flags.config, "config", "", "Configuration file path")
	persistent.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	persistent.StringVar(&flags.logFormat, "log-format", "", "Log format (console, json)")

	fs := rootCmd.Flags()
	fs.StringVarP(&flags.announce, "announce", "a", "", "The torrent announce URL to use")
	fs.BoolVarP(&flags.transcode, "transcode", "t", false, "Transcode the given albums into other formats")
	fs.BoolVarP(&flags.noTranscode, "no-transcode", "T", false, "Ensure the given albums are NOT transcoded")
	fs.CountVarP(&flags.makeTorrent, "make-torrent", "m", "Create torrents of transcoded albums; repeat (-mm) to also torrent the source album")
	fs.BoolVarP(&flags.noTorrent, "no-torrent", "M", false, "Ensure no .torrent files are created")
	fs.StringVarP(&flags.formats, "formats", "f", "", "Comma-separated formats to transcode to (alac,320,v0,v1,v2)")
	fs.IntVarP(&flags.cores, "cores", "c", 0, "Concurrent transcode processes; below 1 uses the CPU count")
	fs.StringVarP(&flags.torrentOutput, "torrent-output", "o", "", "Directory to store created .torrent files")
	fs.StringVarP(&flags.transcodeOutput, "transcode-output", "O", "", "Directory to store transcoded albums")
	rootCmd.MarkFlagsMutuallyExclusive("transcode", "no-transcode")
	rootCmd.MarkFlagsMutuallyExclusive("make-torrent", "no-torrent")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func (f *rootFlags) overrides(cmd *cobra.Command) workflow.Overrides {
	o := workflow.Overrides{
		Announce:        f.announce,
		TorrentOutput:   f.torrentOutput,
		TranscodeOutput: f.transcodeOutput,
		Transcode:       f.transcode,
		NoTranscode:     f.noTranscode,
		TorrentCount:    f.makeTorrent,
		NoTorrent:       f.noTorrent,
	}
	if cmd.Flags().Changed("formats") {
		o.Formats = []string{f.formats}
	}
	if cmd.Flags().Changed("cores") {
		cores := f.cores
		o.Cores = &cores
	}
	return o
}

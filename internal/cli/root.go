// Package cli is the lofibuddy command line.
package cli

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/Miyukiichan/lofi-buddy/config"
	"github.com/Miyukiichan/lofi-buddy/internal/ascii"
	"github.com/Miyukiichan/lofi-buddy/internal/assets"
	"github.com/Miyukiichan/lofi-buddy/internal/game"
	"github.com/Miyukiichan/lofi-buddy/internal/logging"
	"github.com/Miyukiichan/lofi-buddy/internal/monitor"
	"github.com/Miyukiichan/lofi-buddy/internal/silhouette"
)

type rootOptions struct {
	configPath string
	assetsDir  string
	logLevel   string
}

// NewRootCommand builds the lofibuddy command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "lofibuddy [tracks...]",
		Short: "A desktop pet that plays lofi",
		Long: `lofibuddy puts a small always-on-top pet on the desktop. The window
follows the outline of the artwork, so clicks outside it reach the windows
below. Right-click the head for the menu, left-click it to pause.

Tracks given on the command line replace the configured startup track.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPet(cmd.Context(), cmd.ErrOrStderr(), opts, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path (default <user config dir>/lofibuddy/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.assetsDir, "assets", "", "artwork and audio directory (default <executable dir>/assets)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides the config)")

	rootCmd.AddCommand(newMaskCommand())
	rootCmd.AddCommand(newVersionCommand(version))
	return rootCmd
}

func runPet(ctx context.Context, stderr io.Writer, opts *rootOptions, tracks []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	path := opts.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, cfgErr := config.Load(path)
	if cfg == nil {
		return fmt.Errorf("load config: %w", cfgErr)
	}

	levelName := cfg.LogLevel
	if opts.logLevel != "" {
		levelName = opts.logLevel
	}
	level, levelErr := logging.ParseLevel(levelName)
	log := logging.Setup(stderr, level)
	if levelErr != nil {
		log.Warn("using info level", "error", levelErr)
	}
	if cfgErr != nil {
		log.Warn("config unreadable, using defaults", "path", path, "error", cfgErr)
	}

	res, err := resolver(opts.assetsDir)
	if err != nil {
		return err
	}

	watcher, err := config.Watch(ctx, path, logging.For("config"))
	if err != nil {
		log.Warn("config changes will not be picked up", "error", err)
		watcher = nil
	}
	artwork, err := assets.Watch(ctx, res, logging.For("assets"))
	if err != nil {
		log.Warn("artwork changes will not be picked up", "error", err)
		artwork = nil
	}
	stats := monitor.NewSampler()
	stats.Start(ctx, time.Second)

	g, err := game.New(game.Options{
		Config:     cfg,
		ConfigPath: path,
		Assets:     res,
		Tracks:     tracks,
		Watcher:    watcher,
		Artwork:    artwork,
		Stats:      stats,

		LogLevelPinned: opts.logLevel != "",
	})
	if err != nil {
		return err
	}
	log.Info("starting", "assets", res.Root(), "config", path)
	return g.Run()
}

func resolver(dir string) (assets.Resolver, error) {
	if dir != "" {
		return assets.NewResolver(dir), nil
	}
	return assets.ExecutableResolver()
}

func newMaskCommand() *cobra.Command {
	var (
		width int
		shade bool
	)
	cmd := &cobra.Command{
		Use:   "mask <image>",
		Short: "Print the window outline an image produces",
		Long: `Print the silhouette the window would take for an image, with the
number of spans and rectangles handed to the window system. Pixels with any
alpha count as opaque.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMask(cmd.OutOrStdout(), args[0], width, shade)
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 64, "output width in characters")
	cmd.Flags().BoolVar(&shade, "shade", false, "print the image brightness instead of the outline")
	return cmd
}

func printMask(w io.Writer, path string, width int, shade bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	region := silhouette.Build(silhouette.AlphaFromImage(img))
	lines := ascii.Region(region, width)
	if shade {
		lines = ascii.Convert(img, width)
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\n%dx%d  opaque %d px  spans %d  rects %d\n",
		region.Width, region.Height, region.Area(), len(region.Spans), len(region.Rects()))
	return nil
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			v := version
			if v == "" || v == "dev" {
				v = "development"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "lofibuddy %s\n", v)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

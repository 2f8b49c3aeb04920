// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/artistx/internal/formatter"
	"github.com/urfave/cli/v3"
)

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

// tuiCommand launches the interactive browser
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive artist browser",
		Action: r.TUI,
	}
}

// searchCommand lists artists matching a name
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search artists by name",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "name"},
		},
		Flags: append(outputFlags(),
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: txt or csv",
				Value: formatter.FormatText,
			},
		),
		Action: r.Search,
	}
}

// artistCommand shows (or exports) the best-matching artist with top tracks and albums
func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "artist",
		Usage: "Show an artist with top tracks and albums",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "name"},
		},
		Flags: append(outputFlags(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown, txt",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Export destination (file for json/txt, directory for csv/markdown)",
			},
		),
		Action: r.Artist,
	}
}

// tracksCommand lists the best-matching artist's top tracks
func tracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tracks",
		Usage: "List an artist's top tracks",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "name"},
		},
		Flags:  outputFlags(),
		Action: r.Tracks,
	}
}

// albumsCommand lists the best-matching artist's albums
func albumsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "albums",
		Usage: "List an artist's albums",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "name"},
		},
		Flags:  outputFlags(),
		Action: r.Albums,
	}
}

func trackFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "track",
			Aliases: []string{"t"},
			Usage:   "Top track number to use (1-based)",
			Value:   1,
		},
	}
}

// previewCommand plays or saves preview clips
func previewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Preview clip operations",
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "Play an artist's top track preview",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: append(trackFlags(),
					&cli.StringFlag{
						Name:  "url",
						Usage: "Play this preview URL instead of looking up an artist",
					},
					&cli.DurationFlag{
						Name:  "duration",
						Usage: "How long to keep playing",
						Value: defaultPlayDuration,
					},
				),
				Action: r.PreviewPlay,
			},
			{
				Name:  "save",
				Usage: "Download an artist's top track preview as a tagged MP3",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: append(trackFlags(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Destination file or directory",
						Value:   ".",
					},
				),
				Action: r.PreviewSave,
			},
		},
	}
}

// exportCommand exports many artists concurrently
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export several artists (comma or newline separated) with a manifest",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "artists"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"i"},
				Usage:   "Read artist names from a file, one per line",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown, txt",
				Value:   formatter.FormatJSON,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: artist_export_{epoch})",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent writers (max 10)",
				Value: 5,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Artist lookups per second",
				Value: 5,
			},
		},
		Action: r.Export,
	}
}

// authCommand inspects the client-credentials session
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Catalog authentication",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Request a token and report its expiry",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.AuthStatus,
			},
		},
	}
}

// historyCommand reads or clears the local history
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Local search and playback history",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show recent searches, artist views and preview plays",
				Flags: append(outputFlags(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum entries per section (0 for all)",
						Value: 20,
					},
				),
				Action: r.HistoryList,
			},
			{
				Name:   "clear",
				Usage:  "Delete all history",
				Action: r.HistoryClear,
			},
		},
	}
}

// apiCommand handles direct catalog API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct catalog API calls",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Authenticated GET against the catalog API, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// setupCommand creates the config file and history database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize the history database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   configPath,
			},
		},
		Action: r.Setup,
	}
}

package main

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"

	"framethumb/internal/capture"
	"framethumb/internal/config"
	"framethumb/internal/logging"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewConsole(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	opener, previewer := capture.Default(logger)
	app := newApp(cfg, opener, previewer, logger, os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type app struct {
	cfg       *config.Config
	opener    capture.Opener
	previewer capture.Previewer
	logger    *zap.Logger
	in        *bufio.Reader
	out       io.Writer
	errOut    io.Writer
}

func newApp(cfg *config.Config, opener capture.Opener, previewer capture.Previewer, logger *zap.Logger,
	stdin io.Reader, stdout, stderr io.Writer,
) *cli.Command {
	a := &app{
		cfg:       cfg,
		opener:    opener,
		previewer: previewer,
		logger:    logger,
		in:        bufio.NewReader(stdin),
		out:       stdout,
		errOut:    stderr,
	}

	return &cli.Command{
		Name:      "thumbnail",
		Usage:     "Save a resized JPEG thumbnail of one video frame",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "video",
				Aliases: []string{"i"},
				Usage:   "Source video file, prompted for when omitted",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Directory where images are written, prompted for when omitted",
			},
			&cli.IntFlag{
				Name:  "quality",
				Usage: "JPEG quality of written images",
				Value: cfg.JPEGQuality,
			},
			&cli.IntFlag{
				Name:    "frame",
				Aliases: []string{"f"},
				Usage:   "Zero-based index of the frame to save, prompted for when omitted",
				Local:   true,
			},
			&cli.StringFlag{
				Name:    "size",
				Aliases: []string{"s"},
				Usage:   `Thumbnail width and height, e.g. "320 180", prompted for when omitted`,
				Local:   true,
			},
			&cli.BoolFlag{
				Name:  "preview",
				Usage: "Show the thumbnail once it is saved",
				Value: cfg.Preview,
				Local: true,
			},
		},
		Action: a.runExtract,
		Commands: []*cli.Command{
			{
				Name:   "info",
				Usage:  "Print frame count, resolution and frame rate of a video",
				Action: a.runInfo,
			},
			{
				Name:  "dump",
				Usage: "Save every step-th frame of a video as 1000.jpg, 1001.jpg, ...",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "step",
						Usage: "Save one frame out of every step frames",
						Value: 1,
					},
				},
				Action: a.runDump,
			},
		},
	}
}

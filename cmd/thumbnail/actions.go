package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"framethumb/internal/capture"
	"framethumb/internal/extract"

	cli "github.com/urfave/cli/v3"
)

func (a *app) runExtract(ctx context.Context, cmd *cli.Command) error {
	ex, err := a.extractor(cmd, nil)
	if err != nil {
		return err
	}

	videoPath, err := a.value(cmd, "video", "Enter video path: ")
	if err != nil {
		return err
	}
	if err := extract.CheckVideoPath(videoPath); err != nil {
		return exitError(err)
	}
	outputDir, err := a.value(cmd, "out", "Enter save path: ")
	if err != nil {
		return err
	}
	if err := extract.EnsureOutputDir(outputDir); err != nil {
		return exitError(err)
	}

	meta, err := ex.LoadMetadata(videoPath)
	if err != nil {
		return exitError(err)
	}
	a.printMetadata(meta)

	frame, err := a.frame(cmd)
	if err != nil {
		return exitError(err)
	}
	if err := extract.ValidateFrame(frame, meta); err != nil {
		return exitError(err)
	}

	sizeText, err := a.value(cmd, "size", "Enter size: ")
	if err != nil {
		return err
	}
	size, err := extract.ParseSize(sizeText)
	if err != nil {
		return exitError(err)
	}

	res, err := ex.Extract(extract.Request{
		VideoPath:  videoPath,
		OutputDir:  outputDir,
		FrameIndex: frame,
		Size:       size,
		Preview:    cmd.Bool("preview"),
	})
	if res.Path != "" {
		fmt.Fprintf(a.out, "Saved %s\n", res.Path)
	}
	return exitError(err)
}

func (a *app) runInfo(ctx context.Context, cmd *cli.Command) error {
	ex, err := a.extractor(cmd, nil)
	if err != nil {
		return err
	}
	videoPath, err := a.value(cmd, "video", "Enter video path: ")
	if err != nil {
		return err
	}
	if err := extract.CheckVideoPath(videoPath); err != nil {
		return exitError(err)
	}
	meta, err := ex.LoadMetadata(videoPath)
	if err != nil {
		return exitError(err)
	}
	a.printMetadata(meta)
	fmt.Fprintf(a.out, "codec : %s\nduration : %s\n", meta.Codec, meta.Duration)
	return nil
}

func (a *app) runDump(ctx context.Context, cmd *cli.Command) error {
	ex, err := a.extractor(cmd, a.errOut)
	if err != nil {
		return err
	}
	videoPath, err := a.value(cmd, "video", "Enter video path: ")
	if err != nil {
		return err
	}
	if err := extract.CheckVideoPath(videoPath); err != nil {
		return exitError(err)
	}
	outputDir, err := a.value(cmd, "out", "Enter save path: ")
	if err != nil {
		return err
	}

	saved, err := ex.DumpFrames(videoPath, outputDir, cmd.Int("step"))
	if saved > 0 {
		fmt.Fprintf(a.out, "Saved %d frames to %s (%s .. %s)\n",
			saved, outputDir, extract.DumpName(0), extract.DumpName(saved-1))
	}
	return exitError(err)
}

func (a *app) extractor(cmd *cli.Command, progress io.Writer) (*extract.Extractor, error) {
	quality := cmd.Int("quality")
	if quality < 1 || quality > 100 {
		return nil, cli.Exit(fmt.Sprintf("quality must be within [1,100], got %d", quality), 2)
	}
	return extract.New(a.opener, a.previewer, extract.Config{
		JPEGQuality: quality,
		Progress:    progress,
	}, a.logger), nil
}

// value returns the named flag, or asks for it on stdin when it is unset.
func (a *app) value(cmd *cli.Command, flag, prompt string) (string, error) {
	if v := cmd.String(flag); v != "" {
		return v, nil
	}
	return a.prompt(prompt)
}

func (a *app) frame(cmd *cli.Command) (int, error) {
	if cmd.IsSet("frame") {
		return cmd.Int("frame"), nil
	}
	text, err := a.prompt("select frame: ")
	if err != nil {
		return 0, err
	}
	return extract.ParseFrame(text)
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", cli.Exit(fmt.Sprintf("read %q: no input", strings.TrimSpace(label)), 1)
	}
	return strings.TrimSpace(line), nil
}

func (a *app) printMetadata(meta capture.Metadata) {
	fmt.Fprintf(a.out, "frame : %d\nwidth : %d\nheight : %d\nfps : %g\n",
		meta.FrameCount, meta.Width, meta.Height, meta.FrameRate)
}

// exitError maps invalid input to exit code 2 and every other failure to 1.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	for _, invalid := range []error{
		extract.ErrInvalidPath,
		extract.ErrInvalidFrame,
		extract.ErrInvalidSize,
		extract.ErrOutOfRange,
		extract.ErrInvalidStep,
	} {
		if errors.Is(err, invalid) {
			return cli.Exit(err.Error(), 2)
		}
	}
	return cli.Exit(err.Error(), 1)
}

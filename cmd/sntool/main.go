package main

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/akeil/sntool"
	"github.com/akeil/sntool/internal/config"
)

const (
	checkmark = "✓"
	crossmark = "✗"
	ellipsis  = "…"
)

func main() {
	sntool.SetLogLevel("warning")

	app := kingpin.New("sntool", "Supernote Tool")
	app.HelpFlag.Short('h')

	var (
		configFile = app.Flag("config", "Read settings from this YAML file").Short('c').ExistingFile()
		logLevel   = app.Flag("log-level", "Log level (debug, info, warning, error, none)").String()
		skipBroken = app.Flag("skip-broken", "Skip pages that cannot be decoded").Bool()
		format     = app.Flag("format", "Output format (text, json)").Short('f').String()
	)

	info := app.Command("info", "Show file information").Default()
	infoFiles := info.Arg("files", "Supernote files").Required().ExistingFiles()

	pages := app.Command("pages", "List the pages of a file")
	pagesFile := pages.Arg("file", "Supernote file").Required().ExistingFile()

	text := app.Command("text", "Show recognized text")
	textFile := text.Arg("file", "Supernote file").Required().ExistingFile()

	dump := app.Command("dump", "Write bitmaps and other binary blocks to a directory")
	var (
		dumpFile = dump.Arg("file", "Supernote file").Required().ExistingFile()
		outDir   = dump.Flag("output", "Output directory").Short('o').String()
	)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	s, err := settings(*configFile, *logLevel, *format, *outDir, *skipBroken)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	sntool.SetLogLevel(s.LogLevel)

	switch command {
	case "info":
		err = doInfo(s, *infoFiles)
	case "pages":
		err = doPages(s, *pagesFile)
	case "text":
		err = doText(s, *textFile)
	case "dump":
		err = doDump(s, *dumpFile)
	default:
		err = fmt.Errorf("unknown command: %q", command)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

// settings loads the config file, if any, and applies command line flags.
func settings(path, logLevel, format, outDir string, skipBroken bool) (*config.Config, error) {
	s := config.Default()
	if path != "" {
		var err error
		s, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	if logLevel != "" {
		s.LogLevel = logLevel
	}
	if format != "" {
		s.Format = format
	}
	if outDir != "" {
		s.Output = outDir
	}
	if skipBroken {
		s.SkipBroken = true
	}

	return s, s.Validate()
}

func options(s *config.Config) []sntool.Option {
	opts := make([]sntool.Option, 0, 2)
	if s.SkipBroken {
		opts = append(opts, sntool.SkipBrokenPages())
	}
	if s.SkipRecognition {
		opts = append(opts, sntool.SkipRecognition())
	}
	return opts
}

// readAll parses the given files concurrently.
// Results are in the same order as paths.
func readAll(s *config.Config, paths []string) ([]*sntool.Supernote, error) {
	notes := make([]*sntool.Supernote, len(paths))
	opts := options(s)

	var group errgroup.Group
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			n, err := sntool.ReadFile(path, opts...)
			if err != nil {
				return err
			}
			notes[i] = n
			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func readOne(s *config.Config, path string) (*sntool.Supernote, error) {
	notes, err := readAll(s, []string{path})
	if err != nil {
		return nil, err
	}
	return notes[0], nil
}

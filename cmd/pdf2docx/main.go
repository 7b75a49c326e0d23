package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	pdf2docx "github.com/pyhub-apps/pdf2docx-golang"
	"github.com/pyhub-apps/pdf2docx-golang/pkg/env"
	"github.com/pyhub-apps/pdf2docx-golang/pkg/pdf"
)

var log = logrus.New()

// settings holds defaults read from the environment
type settings struct {
	Backend       string
	Workers       int
	LineTolerance float64
	UnicodeNorm   string
	LogLevel      string
}

func loadSettings() (settings, error) {
	s := settings{
		Backend:     env.String("PDF2DOCX_BACKEND", pdf.BackendAuto),
		UnicodeNorm: env.String("PDF2DOCX_UNICODE_NORM", ""),
		LogLevel:    env.String("PDF2DOCX_LOG_LEVEL", "info"),
	}
	var err error
	if s.Workers, err = env.Int("PDF2DOCX_WORKERS", 0); err != nil {
		return s, err
	}
	if s.LineTolerance, err = env.Float("PDF2DOCX_LINE_TOLERANCE", 5.0); err != nil {
		return s, err
	}
	return s, nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: pdf2docx <command> [flags] <args>

Commands:
  convert  [flags] <pdf_file>             convert a PDF to docx, csv or txt
  info     <pdf_file>                     show page sizes and metadata
  merge    -o <out.pdf> <in.pdf>...       merge PDFs
  split    -o <out.pdf> -from N -to M <in.pdf>  extract a page range
  compress -o <out.pdf> <in.pdf>          drop unused objects and duplicate resources

Run "pdf2docx <command> -h" for the flags of a command.`)
}

func main() {
	if err := env.Load(); err != nil {
		log.WithError(err).Warn("Failed to load .env file")
	}

	s, err := loadSettings()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	if level, err := logrus.ParseLevel(s.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithError(err).Warn("Unknown log level, using info")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "convert":
		err = runConvert(ctx, s, args)
	case "info":
		err = runInfo(args)
	case "merge":
		err = runMerge(args)
	case "split":
		err = runSplit(args)
	case "compress":
		err = runCompress(args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.WithError(err).Fatalf("%s failed", cmd)
	}
}

func runConvert(ctx context.Context, s settings, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var (
		output    = fs.String("o", "", "Output file (default: input name with the format's extension)")
		format    = fs.String("format", "docx", "Output format (docx, csv, txt)")
		backend   = fs.String("backend", s.Backend, "PDF library to use (auto, ledongthuc, dslipak)")
		workers   = fs.Int("workers", s.Workers, "Pages processed concurrently (0: one per CPU)")
		tolerance = fs.Float64("tolerance", s.LineTolerance, "Vertical tolerance for line grouping")
		password  = fs.String("password", "", "Password for encrypted PDFs")
		norm      = fs.String("norm", s.UnicodeNorm, "Unicode normalization (NFC, NFD, NFKC, NFKD)")
	)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected one PDF file, got %d", fs.NArg())
	}
	input := fs.Arg(0)

	out := *output
	if out == "" {
		ext := strings.ToLower(*format)
		if ext == "text" {
			ext = "txt"
		}
		out = strings.TrimSuffix(input, filepath.Ext(input)) + "." + ext
	}

	opts := []pdf2docx.Option{
		pdf2docx.WithLogger(log),
		pdf2docx.WithBackend(*backend),
		pdf2docx.WithLineTolerance(*tolerance),
		pdf2docx.WithUnicodeNorm(*norm),
	}
	if *workers > 0 {
		opts = append(opts, pdf2docx.WithWorkers(*workers))
	}
	if *password != "" {
		opts = append(opts, pdf2docx.WithPassword(*password))
	}

	log.WithFields(logrus.Fields{"input": input, "output": out, "format": *format}).Info("Converting PDF")
	return pdf2docx.NewConverter(opts...).ConvertFile(ctx, input, out, *format)
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	password := fs.String("password", "", "Password for encrypted PDFs")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected one PDF file, got %d", fs.NArg())
	}

	info, err := pdf.InspectFile(fs.Arg(0), *password)
	if err != nil {
		return err
	}

	fmt.Printf("Pages: %d\n", info.PageCount)
	meta := info.Metadata
	for _, field := range [][2]string{
		{"Title", meta.Title},
		{"Author", meta.Author},
		{"Subject", meta.Subject},
		{"Creator", meta.Creator},
		{"Producer", meta.Producer},
	} {
		if field[1] != "" {
			fmt.Printf("%s: %s\n", field[0], field[1])
		}
	}
	if !meta.CreationDate.IsZero() {
		fmt.Printf("Created: %s\n", meta.CreationDate.Format("2006-01-02 15:04:05"))
	}
	for i, size := range info.PageSizes {
		fmt.Printf("Page %d: %.2f x %.2f\n", i+1, size.Width, size.Height)
	}
	return nil
}

func runMerge(args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	output := fs.String("o", "merged.pdf", "Output file")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("no input files")
	}

	log.WithFields(logrus.Fields{"inputs": fs.NArg(), "output": *output}).Info("Merging PDFs")
	return pdf.Merge(fs.Args(), *output)
}

func runSplit(args []string) error {
	fs := flag.NewFlagSet("split", flag.ExitOnError)
	var (
		output = fs.String("o", "", "Output file (default: <input>_<from>-<to>.pdf)")
		from   = fs.Int("from", 1, "First page (1-based)")
		to     = fs.Int("to", 1, "Last page (clamped to the page count)")
	)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected one PDF file, got %d", fs.NArg())
	}
	input := fs.Arg(0)

	out := *output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) +
			"_" + strconv.Itoa(*from) + "-" + strconv.Itoa(*to) + ".pdf"
	}

	log.WithFields(logrus.Fields{"input": input, "output": out, "from": *from, "to": *to}).Info("Splitting PDF")
	return pdf.Split(input, out, *from, *to)
}

func runCompress(args []string) error {
	fs := flag.NewFlagSet("compress", flag.ExitOnError)
	output := fs.String("o", "", "Output file (default: <input>_compressed.pdf)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected one PDF file, got %d", fs.NArg())
	}
	input := fs.Arg(0)

	out := *output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + "_compressed.pdf"
	}

	log.WithFields(logrus.Fields{"input": input, "output": out}).Info("Compressing PDF")
	if err := pdf.Compress(input, out); err != nil {
		return err
	}

	if before, err := os.Stat(input); err == nil {
		if after, err := os.Stat(out); err == nil {
			log.WithFields(logrus.Fields{"before": before.Size(), "after": after.Size()}).Info("Compressed PDF")
		}
	}
	return nil
}

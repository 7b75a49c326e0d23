package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pyhub-apps/pdf2docx-golang/pkg/layout"
	"github.com/pyhub-apps/pdf2docx-golang/pkg/pdf"
)

func main() {
	var (
		pdfPath   = flag.String("pdf", "", "Path to PDF file")
		pageNum   = flag.Int("page", 1, "Page number (1-based)")
		library   = flag.String("lib", pdf.BackendAuto, "PDF library to use (auto, ledongthuc, dslipak)")
		tolerance = flag.Float64("tolerance", layout.DefaultLineTolerance, "Vertical tolerance for line grouping")
		maxFrags  = flag.Int("max", 20, "Number of fragments to print")
	)
	flag.Parse()

	if *pdfPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	log := logrus.New()
	doc, err := pdf.Open(*pdfPath, pdf.WithBackend(*library), pdf.WithLogger(log))
	if err != nil {
		log.WithError(err).Fatal("Failed to open PDF")
	}
	defer doc.Close()

	page, err := doc.PageLayout(*pageNum)
	if err != nil {
		log.WithError(err).Fatal("Failed to decode page")
	}

	fmt.Printf("Page %d of %d\n", page.Number, doc.PageCount())
	fmt.Printf("  Width: %.2f\n", page.Width)
	fmt.Printf("  Height: %.2f\n", page.Height)
	fmt.Printf("  Fragments: %d\n\n", len(page.Fragments))

	n := min(*maxFrags, len(page.Fragments))
	fmt.Println("First fragments with positions:")
	for i := 0; i < n; i++ {
		f := page.Fragments[i]
		fmt.Printf("%d. '%s' at (%.2f, %.2f) size %.2f x %.2f\n", i+1, f.Text, f.X, f.Y, f.Width, f.Height)
	}

	opts := []layout.Option{layout.WithLineTolerance(*tolerance)}
	buckets := layout.Buckets(page.Fragments, layout.DefaultBucketSize)
	columns := layout.DetectColumns(page, opts...)
	fmt.Printf("\nDistinct x buckets: %d\n", len(buckets))
	fmt.Printf("Detected columns: %d\n", columns)

	for c, part := range layout.SplitColumns(page, columns) {
		lines := layout.GroupLines(part, opts...)
		fmt.Printf("\n=== Column %d: %d lines ===\n", c+1, len(lines))
		for i, line := range lines {
			fmt.Printf("%3d [y=%.2f] %s\n", i+1, line.Y(), line.Text())
		}
	}
}

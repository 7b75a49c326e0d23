package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pyhub-apps/pdf2docx-golang/pkg/blocks"
	"github.com/pyhub-apps/pdf2docx-golang/pkg/export"
	"github.com/pyhub-apps/pdf2docx-golang/pkg/pdf"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: benchmark <pdf-file>")
		os.Exit(1)
	}

	pdfPath := os.Args[1]
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	// Warm-up run
	doc, err := pdf.Open(pdfPath, pdf.WithLogger(log))
	if err != nil {
		log.WithError(err).Fatal("Failed to open PDF")
	}
	doc.Close()

	start := time.Now()
	doc, err = pdf.Open(pdfPath, pdf.WithLogger(log))
	if err != nil {
		log.WithError(err).Fatal("Failed to open PDF")
	}
	defer doc.Close()
	openTime := time.Since(start)

	fmt.Printf("=== pdf2docx Benchmark ===\n")
	fmt.Printf("File: %s\n", pdfPath)
	fmt.Printf("Pages: %d\n", doc.PageCount())
	fmt.Printf("Open time: %v\n", openTime)

	// Pages are decoded once so the layout timings exclude the decoder
	start = time.Now()
	pages := make([]*pdf.PageLayout, doc.PageCount())
	var totalFragments int
	for i := range pages {
		page, err := doc.PageLayout(i + 1)
		if err != nil {
			log.WithError(err).WithField("page", i+1).Warn("Skipping page")
			continue
		}
		pages[i] = page
		totalFragments += len(page.Fragments)
	}
	decodeTime := time.Since(start)

	fmt.Printf("Decode time: %v\n", decodeTime)
	fmt.Printf("Total fragments: %d\n", totalFragments)

	var blks []blocks.Block
	var assembleTime time.Duration
	for _, workers := range []int{1, runtime.GOMAXPROCS(0)} {
		assembler := blocks.NewAssembler(blocks.WithWorkers(workers), blocks.WithLogger(log))
		start = time.Now()
		blks = assembler.Assemble(pages)
		elapsed := time.Since(start)
		fmt.Printf("Assemble time (%d workers): %v\n", workers, elapsed)
		assembleTime = elapsed
	}
	fmt.Printf("Total blocks: %d\n", len(blks))

	var exportTime time.Duration
	for _, format := range []string{"docx", "csv", "txt"} {
		exporter, err := export.ForFormat(format, doc.GetMetadata())
		if err != nil {
			log.WithError(err).Fatal("Failed to create exporter")
		}
		start = time.Now()
		if err := exporter.Export(io.Discard, blks); err != nil {
			log.WithError(err).WithField("format", format).Error("Export failed")
			continue
		}
		elapsed := time.Since(start)
		fmt.Printf("Export time (%s): %v\n", format, elapsed)
		exportTime += elapsed
	}

	// A whole conversion through the public entry point
	start = time.Now()
	assembled, err := blocks.NewAssembler(blocks.WithLogger(log)).AssembleDocument(context.Background(), doc)
	if err != nil {
		log.WithError(err).Fatal("Assembly failed")
	}
	fullTime := time.Since(start)
	fmt.Printf("Decode and assemble time: %v (%d blocks)\n", fullTime, len(assembled))

	totalTime := openTime + decodeTime + assembleTime + exportTime
	fmt.Printf("\n=== Summary ===\n")
	fmt.Printf("Total processing time: %v\n", totalTime)
	fmt.Printf("Pages/sec: %.2f\n", float64(doc.PageCount())/totalTime.Seconds())
}

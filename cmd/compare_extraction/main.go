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
	pageNum := flag.Int("page", 1, "Page number (1-based)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: compare_extraction [-page N] <pdf-file>")
		os.Exit(1)
	}

	pdfPath := flag.Arg(0)
	log := logrus.New()

	for _, backend := range []string{pdf.BackendLedongthuc, pdf.BackendDslipak} {
		fmt.Printf("=== %s ===\n", backend)

		doc, err := pdf.Open(pdfPath, pdf.WithBackend(backend), pdf.WithLogger(log))
		if err != nil {
			fmt.Printf("  Failed to open: %v\n\n", err)
			continue
		}

		fmt.Printf("  Pages: %d\n", doc.PageCount())
		page, err := doc.PageLayout(*pageNum)
		if err != nil {
			fmt.Printf("  Failed to decode page %d: %v\n\n", *pageNum, err)
			doc.Close()
			continue
		}

		fmt.Printf("  Page %d: %.2f x %.2f\n", page.Number, page.Width, page.Height)
		fmt.Printf("  Fragments: %d\n", len(page.Fragments))
		fmt.Printf("  Columns: %d\n", layout.DetectColumns(page))

		lines := layout.GroupLines(page.Fragments)
		fmt.Printf("  Lines: %d\n", len(lines))
		for i, line := range lines {
			if i >= 5 {
				break
			}
			fmt.Printf("    %6.1f %q\n", line.Y(), line.Text())
		}
		fmt.Println()

		doc.Close()
	}
}

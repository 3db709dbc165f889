package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"mindly-be/internal/dto"
	"mindly-be/pkg/knowledge"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Embed and store the built-in documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		svc, err := knowledgeService(ctx)
		if err != nil {
			return err
		}

		color.Cyan("Seeding built-in knowledge documents...")
		n, err := svc.SeedDefaults(ctx)
		if err != nil {
			return err
		}
		color.Green("✓ Stored %d documents", n)
		return nil
	},
}

var pdfDir string

var loadPDFsCmd = &cobra.Command{
	Use:   "load-pdfs",
	Short: "Chunk, embed and store the research PDFs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		svc, err := knowledgeService(ctx)
		if err != nil {
			return err
		}

		manifest := knowledge.DefaultManifest()
		for i := range manifest {
			manifest[i].Path = filepath.Join(pdfDir, filepath.Base(manifest[i].Path))
		}

		color.Cyan("Loading %d PDFs from %s...", len(manifest), pdfDir)
		report := svc.LoadPDFs(ctx, manifest)

		for path, err := range report.Errors {
			color.Red("✗ %s: %v", path, err)
		}
		color.Green("✓ %d loaded, %d failed, %d chunks stored", report.Successful, report.Failed, report.TotalChunks)
		if report.Successful == 0 && report.Failed > 0 {
			return fmt.Errorf("no PDF could be loaded")
		}
		return nil
	},
}

var (
	searchK        int
	searchCategory string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Show the passages closest to a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		svc, err := knowledgeService(ctx)
		if err != nil {
			return err
		}

		results, err := svc.Search(ctx, &dto.SearchKnowledgeRequest{
			Query:    strings.Join(args, " "),
			K:        searchK,
			Category: searchCategory,
		})
		if err != nil {
			return err
		}
		if len(results) == 0 {
			color.Yellow("No matching passages")
			return nil
		}
		for i, r := range results {
			color.Cyan("%d. [%s/%s] %s (similarity %.3f)", i+1, r.Category, r.Type, r.Key, r.Similarity)
			fmt.Println("   " + preview(r.Content, 200))
		}
		return nil
	},
}

var (
	listLimit  int
	listOffset int
)

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List stored passages",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		svc, err := knowledgeService(ctx)
		if err != nil {
			return err
		}

		category := ""
		if len(args) == 1 {
			category = args[0]
		}
		documents, total, err := svc.List(ctx, category, listLimit, listOffset)
		if err != nil {
			return err
		}

		color.Cyan("%d passages (showing %d)", total, len(documents))
		for _, d := range documents {
			fmt.Printf("  %-24s %-10s %-10s %s\n", d.DocKey, d.Category, d.Type, preview(d.Content, 60))
		}
		return nil
	},
}

func init() {
	loadPDFsCmd.Flags().StringVar(&pdfDir, "dir", "data", "Directory holding the PDFs")
	searchCmd.Flags().IntVarP(&searchK, "top", "k", 3, "Number of passages")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "Restrict to one category")
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Page size")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Page offset")
}

func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

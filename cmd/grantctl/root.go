package main

import (
	"context"
	"fmt"
	"os"

	"grantrates-backend/content"
	"grantrates-backend/dataset"
	"grantrates-backend/models"
	"grantrates-backend/service"
	"grantrates-backend/storage"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	contentDir string
	lang       string
}

var rootCmd = &cobra.Command{
	Use:   "grantctl",
	Short: "Query and validate the asylum grant-rate content",
	Long:  "grantctl searches the bundled judge grant-rate dataset\nand checks the dialogue trees and FAQ before they ship.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.contentDir, "content-dir", "", "read content from this directory instead of the embedded copy")
	f.StringVar(&rootFlags.lang, "lang", "en", "language for sorting and labels (en, es, ht)")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(cityCmd)
	rootCmd.AddCommand(judgeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func contentStorage() (storage.Storage, error) {
	if rootFlags.contentDir == "" {
		return storage.NewEmbeddedStorage(), nil
	}
	return storage.NewLocalStorage(rootFlags.contentDir)
}

func language() (models.Language, error) {
	return models.ParseLanguage(rootFlags.lang)
}

func catalog(ctx context.Context) (*service.CatalogService, error) {
	s, err := contentStorage()
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(ctx, s, content.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return service.NewCatalogService(service.WithDataset(ds)), nil
}

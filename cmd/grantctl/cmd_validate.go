package main

import (
	"fmt"

	"grantrates-backend/content"
	"grantrates-backend/dataset"
	"grantrates-backend/dialogue"
	"grantrates-backend/faq"
	"grantrates-backend/models"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dataset, dialogue trees and FAQ",
	Long:  "Loads every content file, checks that each translated dialogue tree\nhas the same shape as the English one and reports unreachable nodes.",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	s, err := contentStorage()
	if err != nil {
		return err
	}

	ds, err := dataset.Load(ctx, s, content.DatasetPath)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	cities, judges := ds.Counts()
	fmt.Fprintf(out, "dataset   ok  %d cities, %d judges\n", cities, judges)

	lib, err := dialogue.LoadLibrary(ctx, s, models.SupportedLanguages)
	if err != nil {
		return fmt.Errorf("dialogue: %w", err)
	}
	source := lib.Tree(models.LanguageEnglish)
	var problems int
	for _, lang := range lib.Languages() {
		tree := lib.Tree(lang)
		if unreachable := tree.Unreachable(); len(unreachable) > 0 {
			fmt.Fprintf(out, "dialogue  %s  warning  unreachable nodes %v\n", lang, unreachable)
		}
		if lang == models.LanguageEnglish {
			fmt.Fprintf(out, "dialogue  %s  ok  %d nodes\n", lang, tree.Len())
			continue
		}
		if err := dialogue.SameShape(source, tree); err != nil {
			fmt.Fprintf(out, "dialogue  %s  FAIL  %v\n", lang, err)
			problems++
			continue
		}
		fmt.Fprintf(out, "dialogue  %s  ok  %d nodes\n", lang, tree.Len())
	}

	help, err := faq.Load(ctx, s, content.FAQPath)
	if err != nil {
		return fmt.Errorf("faq: %w", err)
	}
	fmt.Fprintf(out, "faq       ok  %d entries\n", help.Len())

	if problems > 0 {
		return fmt.Errorf("%d dialogue tree(s) failed validation", problems)
	}
	return nil
}

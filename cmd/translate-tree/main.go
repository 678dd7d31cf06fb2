package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"grantrates-backend/config"
	"grantrates-backend/content"
	"grantrates-backend/dialogue"
	"grantrates-backend/logging"
	"grantrates-backend/models"
	"grantrates-backend/storage"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-pro"

const promptTemplate = `You translate the content of a help-chat decision tree for asylum seekers.
Translate the following YAML document from English into the language with code %q (%s).

Rules:
- Keep every node id, every "next" value and every "type", "url" and "src" value exactly as they are.
- Translate only "message" strings, "text" and "alt" values of fragments, and option "label" values.
- Keep the number and order of nodes, options and fragments.
- Answer with the YAML document only, without code fences or commentary.

%s`

func main() {
	lang := flag.String("lang", "", "target language code, e.g. fr")
	name := flag.String("name", "", "target language name for the prompt, e.g. French")
	out := flag.String("out", "", "output file (default content/dialogue/<lang>.yaml)")
	modelName := flag.String("model", defaultModel, "Gemini model")
	flag.Parse()

	if *lang == "" {
		logging.Fatal("-lang is required")
	}
	if *name == "" {
		*name = *lang
	}
	if *out == "" {
		*out = filepath.Join("content", content.DialogueTreePath(*lang))
	}

	config.LoadDotEnv()
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logging.Fatal("GEMINI_API_KEY environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	source, err := storage.ReadAll(ctx, storage.NewEmbeddedStorage(), content.DialogueTreePath(string(models.LanguageEnglish)))
	if err != nil {
		logging.Fatal("Failed to read English tree", "error", err)
	}
	sourceTree, err := dialogue.ParseTree(models.LanguageEnglish, source)
	if err != nil {
		logging.Fatal("English tree is invalid", "error", err)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		logging.Fatal("Failed to initialize Gemini", "error", err)
	}
	defer client.Close()

	logging.Info("Translating dialogue tree", "language", *lang, "nodes", sourceTree.Len(), "model", *modelName)
	draft, err := translate(ctx, client, *modelName, fmt.Sprintf(promptTemplate, *lang, *name, source))
	if err != nil {
		logging.Fatal("Translation failed", "error", err)
	}

	translated, err := dialogue.ParseTree(models.Language(*lang), []byte(draft))
	if err != nil {
		logging.Fatal("Translated tree is invalid", "error", err)
	}
	if err := dialogue.SameShape(sourceTree, translated); err != nil {
		logging.Fatal("Translated tree does not match the English tree", "error", err)
	}

	if err := os.WriteFile(*out, []byte(draft), 0644); err != nil {
		logging.Fatal("Failed to write tree", "error", err)
	}
	fmt.Printf("\n✅ Wrote %s (%d nodes). Review the wording before committing it.\n", *out, translated.Len())
}

func translate(ctx context.Context, client *genai.Client, modelName, prompt string) (string, error) {
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("API returned no candidates")
	}

	var b strings.Builder
	for i, candidate := range resp.Candidates {
		if candidate.FinishReason != genai.FinishReasonStop {
			logging.Warn("Candidate finished early", "candidate", i, "reason", candidate.FinishReason.String())
		}
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		// one candidate is enough
		break
	}

	draft := stripFences(b.String())
	if draft == "" {
		return "", fmt.Errorf("API returned empty content")
	}
	return draft, nil
}

// stripFences removes a surrounding ```yaml block if the model added one
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s + "\n"
	}
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s) + "\n"
}

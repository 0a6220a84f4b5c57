package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/GMaN1911/hologram-cognitive/internal/discovery"
	"github.com/GMaN1911/hologram-cognitive/internal/graph"
	"github.com/GMaN1911/hologram-cognitive/internal/pressure"
	"github.com/GMaN1911/hologram-cognitive/internal/store"
)

// maxDocumentBytes caps how much of a file discovery scans.
const maxDocumentBytes = 256 * 1024

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [documents-dir]",
		Short: "Scan documents, discover edges, and initialize the session graph",
		Long: `Scan a directory of documents, propose edges with the discovery
strategies (explicit references, mutual mentions, path components,
shared keywords), merge them into a directed graph, and persist the
graph with pressures initialized to an equal share of the budget.

Rebuilding replaces the stored graph and resets all pressure state;
this is also the only way to remove a document from a session.

Examples:
  hologram build ./docs
  hologram build ./docs --ext .md --ext .txt
  hologram build ./docs --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			exts, _ := cmd.Flags().GetStringSlice("ext")

			docsDir := root
			if len(args) == 1 {
				docsDir = args[0]
			}

			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}

			docs, skipped, err := collectDocuments(docsDir, exts)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				return fmt.Errorf("no documents found under %s", docsDir)
			}

			scanner := discovery.NewScanner(cfg.Discovery)
			proposals := scanner.Scan(docs)

			builder := graph.NewBuilder()
			for _, d := range docs {
				builder.AddNode(d.ID)
			}
			builder.AddProposals(proposals)
			g := builder.Build()

			engine, err := pressure.NewEngine(g, cfg.Pressure)
			if err != nil {
				return err
			}

			st, err := store.Open(root)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := context.Background()
			if err := st.SaveGraph(ctx, g, engine.Snapshot()); err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"documents": g.NodeCount(),
					"edges":     g.EdgeCount(),
					"proposals": len(proposals),
					"skipped":   skipped,
				})
			}

			fmt.Printf("Built graph: %d documents, %d edges (%d proposals merged, %d files skipped)\n",
				g.NodeCount(), g.EdgeCount(), len(proposals), skipped)
			return nil
		},
	}

	cmd.Flags().StringSlice("ext", []string{".md", ".txt", ".go", ".py", ".rs", ".js", ".ts"},
		"File extensions to include")

	return cmd
}

// collectDocuments walks dir and reads matching files into documents.
// Document ids are slash-separated paths relative to dir. Unreadable or
// binary files are skipped, not fatal: one bad file must not abort the
// whole build.
func collectDocuments(dir string, exts []string) ([]discovery.Document, int, error) {
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(e)] = true
	}

	var docs []discovery.Document
	skipped := 0

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			skipped++
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if name == ".hologram" || name == ".git" || strings.HasPrefix(name, ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !extSet[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			skipped++
			return nil
		}
		if len(data) > maxDocumentBytes {
			data = data[:maxDocumentBytes]
		}
		if !utf8.Valid(data) {
			skipped++
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		docs = append(docs, discovery.Document{
			ID:      filepath.ToSlash(rel),
			Content: string(data),
		})
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walk %s: %w", dir, err)
	}

	return docs, skipped, nil
}

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/peopleops/hrdesk/config"
	"github.com/peopleops/hrdesk/ingest"
	"github.com/peopleops/hrdesk/internal/vector/pinecone"
	"github.com/peopleops/hrdesk/provider"
)

func ingestCMD() *cobra.Command {
	var cfgPath string
	var docDir string
	var ing = &cobra.Command{
		Use:   "ingest",
		Short: "Load policy documents into the vector index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			if err := cfg.LLM.Validate(); err != nil {
				return err
			}
			if err := cfg.Vector.Validate(); err != nil {
				return err
			}

			ctx := context.Background()
			llm, err := provider.NewProvider(ctx, cfg.LLM)
			if err != nil {
				return err
			}
			logger := log.New(log.Writer(), "[INGEST] ", log.LstdFlags)
			index, err := pinecone.NewEnsuringIndex(ctx, cfg.Vector, logger)
			if err != nil {
				return fmt.Errorf("vector index: %w", err)
			}

			n, err := ingest.New(llm, index, cfg.Ingest).IngestDir(ctx, docDir)
			if err != nil {
				return err
			}
			logger.Printf("ingested %d chunks from %s", n, docDir)

			if total, err := index.Stats(ctx); err == nil {
				logger.Printf("index %s now holds %d vectors", cfg.Vector.IndexName, total)
			}
			return nil
		},
	}
	ing.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	ing.Flags().StringVar(&docDir, "dir", "documents", "directory of .txt policy documents")

	return ing
}

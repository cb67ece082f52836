/*
Copyright © 2025 developer4fun
*/
package cmd

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/developer4fun/Knowledge-Explorer/database"
	"github.com/developer4fun/Knowledge-Explorer/types"
)

// ingestDocumentCmd represents the ingest command
var ingestDocumentCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a parsed document into the local store",
	Long: `Reads a parsed-document JSON file (document id, title and ordered
sections) and persists it in the local document store, so local
recommendations are available before the server ever runs.`,
	Run: func(cmd *cobra.Command, args []string) {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

		filePath, _ := cmd.Flags().GetString("file")
		storePath, _ := cmd.Flags().GetString("store-path")
		documentID, _ := cmd.Flags().GetString("id")

		data, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatal().Err(err).Str("file", filePath).Msg("Failed to read document file")
		}

		var req types.IngestDocumentRequest
		if err := json.Unmarshal(data, &req); err != nil {
			log.Fatal().Err(err).Msg("Failed to parse document file")
		}
		if documentID != "" {
			req.DocumentID = documentID
		}
		if req.DocumentID == "" {
			req.DocumentID = uuid.NewString()
		}

		doc := types.Document{
			ID:       req.DocumentID,
			Title:    req.Title,
			Sections: make([]types.Section, 0, len(req.Sections)),
		}
		for i, section := range req.Sections {
			page := section.PageNumber
			if page < 1 {
				page = 1
			}
			doc.Sections = append(doc.Sections, types.Section{
				Index:      i,
				Title:      section.Title,
				PageNumber: page,
				Content:    section.Content,
			})
		}
		if err := doc.Validate(); err != nil {
			log.Fatal().Err(err).Msg("Invalid document")
		}

		store, err := database.NewChromemStore(storePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", storePath).Msg("Failed to open document store")
		}
		if err := store.Put(context.Background(), &doc); err != nil {
			log.Fatal().Err(err).Str("document_id", doc.ID).Msg("Failed to store document")
		}

		log.Info().Str("document_id", doc.ID).Int("sections", len(doc.Sections)).Msg("Document ingested")
	},
}

func init() {
	rootCmd.AddCommand(ingestDocumentCmd)

	ingestDocumentCmd.Flags().StringP("file", "f", "", "Path to the parsed-document JSON file")
	ingestDocumentCmd.Flags().StringP("store-path", "s", "./data/documents", "Path of the local document store")
	ingestDocumentCmd.Flags().String("id", "", "Override the document id")
	ingestDocumentCmd.MarkFlagRequired("file")
}

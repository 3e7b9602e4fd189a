package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"aifm/internal/container"
	"aifm/internal/ledger"
	"aifm/internal/logging"
	"aifm/internal/textutil"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var (
		outPath     string
		title       string
		description string
		mode        string
		tier        string
		author      string
		contact     string
		aiSystem    string
		urls        []string

		personaPath     string
		declarationPath string
		promptPath      string
		lyricsPath      string
	)

	cmd := &cobra.Command{
		Use:   "build <payload>",
		Short: "Package a payload and its declared provenance into a container",
		Long: `Build assembles an AIFM container from an unmodified payload file, the
declared authorship claims, and any optional metadata documents. The payload
is hashed exactly as stored; metadata stays unhashed and mutable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			payloadPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve payload path: %w", err)
			}

			if strings.TrimSpace(title) == "" {
				title = textutil.DeriveTitle(payloadPath)
			}
			if strings.TrimSpace(mode) == "" {
				mode = cfg.Defaults.Mode
			}
			if strings.TrimSpace(tier) == "" {
				tier = cfg.Defaults.Tier
			}
			if strings.TrimSpace(author) == "" {
				author = cfg.Defaults.Author
			}
			if strings.TrimSpace(contact) == "" {
				contact = cfg.Defaults.Contact
			}
			if strings.TrimSpace(aiSystem) == "" {
				aiSystem = cfg.Defaults.AISystem
			}

			logger := ctx.ensureLogger().With(logging.String("session_id", uuid.NewString()))

			builder := container.NewBuilder(logger)
			result, err := builder.Build(container.BuildRequest{
				PayloadPath:     payloadPath,
				OutputPath:      outPath,
				Title:           title,
				Description:     description,
				Mode:            mode,
				Tier:            tier,
				Author:          author,
				Contact:         contact,
				AISystem:        aiSystem,
				AttestationURLs: urls,
				MetadataPaths: map[container.MetadataKind]string{
					container.KindPersona:     personaPath,
					container.KindDeclaration: declarationPath,
					container.KindPrompt:      promptPath,
					container.KindLyrics:      lyricsPath,
				},
			})
			if err != nil {
				return err
			}

			ctx.recordHistory(cmd.Context(), ledger.Record{
				Operation:       ledger.OpBuild,
				ContainerPath:   result.OutputPath,
				PayloadFilename: result.Manifest.Payload.Filename,
				SHA256Hex:       result.Manifest.Payload.SHA256Hex,
				Title:           result.Manifest.Title,
				CreatedAt:       result.Manifest.CreatedAt,
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %s\n", result.OutputPath)
			fmt.Fprintf(out, "  Payload:  payload/%s (%d bytes)\n", result.Manifest.Payload.Filename, result.Manifest.Payload.SizeBytes)
			fmt.Fprintf(out, "  SHA-256:  %s\n", result.Manifest.Payload.SHA256Hex)
			for _, kind := range result.Metadata {
				fmt.Fprintf(out, "  Metadata: metadata/%s.txt\n", kind)
			}
			if count := len(result.Manifest.AttestationURLs); count > 0 {
				fmt.Fprintf(out, "  Attestation URLs: %d\n", count)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output container path (extension forced to .aifm)")
	cmd.Flags().StringVar(&title, "title", "", "Work title (derived from the payload filename when omitted)")
	cmd.Flags().StringVar(&description, "desc", "", "Free-text description of the work")
	cmd.Flags().StringVar(&mode, "mode", "", "Creation mode: human-directed-ai, ai-assisted-human, or autonomous-ai")
	cmd.Flags().StringVar(&tier, "tier", "", "Disclosure tier: SDA, VC, or PVA")
	cmd.Flags().StringVar(&author, "author", "", "Declared human creator name")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact or identity disclosure")
	cmd.Flags().StringVar(&aiSystem, "ai-system", "", "Name of the generative tool(s) used")
	cmd.Flags().StringArrayVar(&urls, "url", nil, "Public attestation URL (repeatable)")
	cmd.Flags().StringVar(&personaPath, "persona", "", "Path to a persona document")
	cmd.Flags().StringVar(&declarationPath, "declaration", "", "Path to a declaration document")
	cmd.Flags().StringVar(&promptPath, "prompt", "", "Path to a prompt document")
	cmd.Flags().StringVar(&lyricsPath, "lyrics", "", "Path to a lyrics document")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

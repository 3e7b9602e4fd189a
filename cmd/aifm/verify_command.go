package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"aifm/internal/container"
	"aifm/internal/ledger"
	"aifm/internal/manifest"
)

// errTampered is the verdict surfaced through the exit code after the full
// report has been printed. It is not a structural failure.
var errTampered = errors.New("payload hash mismatch: container is tampered")

type verifyOutput struct {
	Path           string            `json:"path"`
	Manifest       manifest.Manifest `json:"manifest"`
	ComputedSHA256 string            `json:"computed_sha256"`
	Verdict        container.Verdict `json:"verdict"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "verify <container>",
		Short: "Verify payload integrity and display declared claims",
		Long: `Verify opens an existing container, prints every declared claim and
metadata document without judging them, recomputes the payload SHA-256 over
the archived bytes, and reports Verified or Tampered.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}

			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve container path: %w", err)
			}

			verifier := container.NewVerifier(ctx.ensureLogger())
			report, err := verifier.Verify(path)
			if err != nil {
				return err
			}

			ctx.recordHistory(cmd.Context(), ledger.Record{
				Operation:       ledger.OpVerify,
				ContainerPath:   report.Path,
				PayloadFilename: report.Manifest.Payload.Filename,
				SHA256Hex:       report.ComputedSHA256,
				Verdict:         string(report.Verdict),
				Title:           report.Manifest.Title,
			})

			if jsonOut {
				if err := writeJSON(cmd, newVerifyOutput(report)); err != nil {
					return err
				}
			} else {
				renderReport(cmd, report)
			}

			if !report.Verified() {
				return errTampered
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")

	return cmd
}

func newVerifyOutput(report *container.Report) verifyOutput {
	out := verifyOutput{
		Path:           report.Path,
		Manifest:       report.Manifest,
		ComputedSHA256: report.ComputedSHA256,
		Verdict:        report.Verdict,
	}
	if len(report.Metadata) > 0 {
		out.Metadata = make(map[string]string, len(report.Metadata))
		for _, doc := range report.Metadata {
			out.Metadata[string(doc.Kind)] = doc.Text
		}
	}
	return out
}

func renderReport(cmd *cobra.Command, report *container.Report) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	man := report.Manifest

	fmt.Fprintln(out, renderClaims([][2]string{
		{"Title", man.Title},
		{"Description", man.Description},
		{"Mode", string(man.Mode)},
		{"Tier", string(man.Tier)},
		{"Author", man.Author},
		{"Contact", man.Contact},
		{"AI System", man.AISystem},
		{"Created At", man.CreatedAt.Format(time.RFC3339)},
		{"Schema", man.SchemaVersion},
		{"Payload", "payload/" + man.Payload.Filename},
		{"Size", strconv.FormatInt(man.Payload.SizeBytes, 10) + " bytes"},
		{"SHA-256", man.Payload.SHA256Hex},
	}))

	if len(man.AttestationURLs) > 0 {
		fmt.Fprintln(out, "\nAttestation URLs (recorded, never dereferenced):")
		for _, url := range man.AttestationURLs {
			fmt.Fprintf(out, "  - %s\n", url)
		}
	}

	for _, doc := range report.Metadata {
		fmt.Fprintf(out, "\n%s (metadata/%s.txt, non-authoritative):\n", titleCaseKind(doc.Kind), doc.Kind)
		fmt.Fprintln(out, strings.TrimRight(doc.Text, "\n"))
	}

	fmt.Fprintln(out)
	if report.Verified() {
		fmt.Fprintln(out, renderVerdictLine("Verified: payload bytes match the declared SHA-256", true, colorize))
	} else {
		fmt.Fprintln(out, renderVerdictLine("Tampered: payload bytes do not match the declared SHA-256", false, colorize))
		fmt.Fprintf(out, "  declared: %s\n", man.Payload.SHA256Hex)
		fmt.Fprintf(out, "  computed: %s\n", report.ComputedSHA256)
	}
}

func titleCaseKind(kind container.MetadataKind) string {
	name := string(kind)
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

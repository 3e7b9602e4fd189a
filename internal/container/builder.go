package container

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"aifm/internal/logging"
	"aifm/internal/manifest"
)

// archiveEpoch is the fixed modification time stamped on every archive entry
// so rebuilding identical inputs yields byte-stable entry headers.
var archiveEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// BuildRequest carries everything a build needs: the payload, the declared
// claims, the optional metadata documents, and the output destination.
type BuildRequest struct {
	PayloadPath string
	OutputPath  string

	Title       string
	Description string
	Mode        string
	Tier        string
	Author      string
	Contact     string
	AISystem    string

	AttestationURLs []string

	// MetadataPaths maps a metadata kind to a source file. A missing key
	// omits the document; a present key whose file does not exist is an
	// ErrInputNotFound failure.
	MetadataPaths map[MetadataKind]string
}

// BuildResult summarizes a successful build.
type BuildResult struct {
	OutputPath string
	Manifest   manifest.Manifest
	Metadata   []MetadataKind
	SizeBytes  int64
}

// Builder assembles containers. Now is the build clock; tests may pin it,
// production callers leave the default.
type Builder struct {
	logger *slog.Logger
	Now    func() time.Time
}

// NewBuilder returns a Builder logging through logger. A nil logger is
// replaced with a no-op logger.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Builder{logger: logger, Now: time.Now}
}

// Build validates the request, computes the payload digest, and materializes
// the container at the requested output path. The archive is staged under a
// temporary name and renamed into place only once assembly succeeds; on any
// failure the staging file is removed and no output is published.
func (b *Builder) Build(req BuildRequest) (*BuildResult, error) {
	info, err := os.Stat(req.PayloadPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: payload %s", ErrInputNotFound, req.PayloadPath)
		}
		return nil, fmt.Errorf("inspect payload: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: payload %s is a directory, expected a file", ErrInputNotFound, req.PayloadPath)
	}

	mode, err := manifest.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	tier, err := manifest.ParseTier(req.Tier)
	if err != nil {
		return nil, err
	}

	docs, kinds, err := readMetadata(req.MetadataPaths)
	if err != nil {
		return nil, err
	}

	digest, err := manifest.SumFile(req.PayloadPath)
	if err != nil {
		return nil, err
	}

	man := manifest.Build(
		manifest.Fields{
			Title:           req.Title,
			Description:     req.Description,
			Mode:            mode,
			Tier:            tier,
			Author:          req.Author,
			Contact:         req.Contact,
			AISystem:        req.AISystem,
			AttestationURLs: req.AttestationURLs,
		},
		manifest.Payload{
			Filename:  filepath.Base(req.PayloadPath),
			SizeBytes: info.Size(),
			SHA256Hex: digest,
		},
		b.Now(),
	)

	out, err := normalizeOutputPath(req.OutputPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if err := checkWritableDir(filepath.Dir(out)); err != nil {
		return nil, err
	}

	size, err := b.materialize(out, req.PayloadPath, man, docs)
	if err != nil {
		return nil, err
	}

	b.logger.Info("container built",
		logging.String("output", out),
		logging.String("payload", man.Payload.Filename),
		logging.String("sha256", man.Payload.SHA256Hex),
		logging.Int64("size_bytes", size),
		logging.Int("metadata_documents", len(kinds)),
	)

	return &BuildResult{
		OutputPath: out,
		Manifest:   man,
		Metadata:   kinds,
		SizeBytes:  size,
	}, nil
}

// materialize writes the archive to a staging path guarded by a build lock
// and renames it over the final output once the zip writer closes cleanly.
func (b *Builder) materialize(out, payloadPath string, man manifest.Manifest, docs map[MetadataKind][]byte) (int64, error) {
	lock := flock.New(out + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return 0, fmt.Errorf("acquire build lock: %w", err)
	}
	if !locked {
		return 0, fmt.Errorf("another build is already writing %s", out)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	staging := fmt.Sprintf("%s.%s.tmp", out, uuid.NewString())
	if err := writeArchive(staging, payloadPath, man, docs); err != nil {
		_ = os.Remove(staging)
		return 0, err
	}
	if err := os.Rename(staging, out); err != nil {
		_ = os.Remove(staging)
		return 0, fmt.Errorf("publish container: %w", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		return 0, fmt.Errorf("inspect container: %w", err)
	}
	return info.Size(), nil
}

func writeArchive(path, payloadPath string, man manifest.Manifest, docs map[MetadataKind][]byte) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create staging archive: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close staging archive: %w", closeErr)
		}
	}()

	zw := zip.NewWriter(file)

	payload, err := os.Open(payloadPath)
	if err != nil {
		return fmt.Errorf("open payload: %w", err)
	}
	defer payload.Close()

	// Payload bytes stream through unchanged; compression does not alter
	// the extracted bytes the verifier hashes.
	entry, err := newEntry(zw, payloadDir+filepath.Base(payloadPath))
	if err != nil {
		return err
	}
	if _, err := io.Copy(entry, payload); err != nil {
		return fmt.Errorf("store payload: %w", err)
	}

	manifestBytes, err := json.MarshalIndent(man, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := writeEntry(zw, manifestName, manifestBytes); err != nil {
		return err
	}

	for _, kind := range MetadataKinds() {
		data, ok := docs[kind]
		if !ok {
			continue
		}
		if err := writeEntry(zw, kind.entryName(), data); err != nil {
			return err
		}
	}

	if err := writeEntry(zw, readmeName, []byte(renderReadme(man))); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

func newEntry(zw *zip.Writer, name string) (io.Writer, error) {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: archiveEpoch,
	})
	if err != nil {
		return nil, fmt.Errorf("create archive entry %s: %w", name, err)
	}
	return w, nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := newEntry(zw, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write archive entry %s: %w", name, err)
	}
	return nil
}

func readMetadata(paths map[MetadataKind]string) (map[MetadataKind][]byte, []MetadataKind, error) {
	docs := make(map[MetadataKind][]byte, len(paths))
	kinds := make([]MetadataKind, 0, len(paths))
	for _, kind := range MetadataKinds() {
		path, ok := paths[kind]
		if !ok || strings.TrimSpace(path) == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, nil, fmt.Errorf("%w: %s file %s", ErrInputNotFound, kind, path)
			}
			return nil, nil, fmt.Errorf("read %s file: %w", kind, err)
		}
		docs[kind] = data
		kinds = append(kinds, kind)
	}
	return docs, kinds, nil
}

func normalizeOutputPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("output path is required")
	}
	absolute, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	if !strings.EqualFold(filepath.Ext(absolute), Extension) {
		absolute += Extension
	}
	return absolute, nil
}

// renderReadme produces the human-oriented README.txt entry. It is
// informative only; manifest.json remains the sole authoritative record.
func renderReadme(man manifest.Manifest) string {
	var sb strings.Builder
	sb.WriteString("AIFM Container\n")
	sb.WriteString("--------------\n")
	fmt.Fprintf(&sb, "Title: %s\n", man.Title)
	fmt.Fprintf(&sb, "Created At (UTC): %s\n", man.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Disclosure Tier: %s\n\n", man.Tier)
	sb.WriteString("Authoritative metadata lives in manifest.json at the archive root.\n")
	sb.WriteString("Documents under metadata/ are informative and unhashed.\n")
	sb.WriteString("This README is non-authoritative.\n")
	return sb.String()
}

package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// SumReader streams r through SHA-256 and returns the lowercase hex digest.
// The reader is consumed incrementally, so arbitrarily large payloads never
// need to fit in memory.
func SumReader(r io.Reader) (string, error) {
	hasher := sha256.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return "", fmt.Errorf("hash payload: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// SumFile computes the SHA-256 hex digest of the file at path.
func SumFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return SumReader(file)
}

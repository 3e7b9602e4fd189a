package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"aifm/internal/container"
)

func buildTestContainer(t *testing.T, env *cliTestEnv) string {
	t.Helper()
	payload := writePayload(t, env, "verify_me.wav")
	out := filepath.Join(env.baseDir, "verify_me.aifm")
	if _, _, err := runCLI(t, env, "build", payload, "-o", out, "--title", "Verify Me"); err != nil {
		t.Fatalf("build: %v", err)
	}
	return out
}

// corruptPayload rewrites the container in place with different payload bytes
// while leaving the manifest untouched.
func corruptPayload(t *testing.T, path string) {
	t.Helper()
	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open container: %v", err)
	}

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, entry := range reader.File {
		w, err := writer.CreateHeader(&zip.FileHeader{Name: entry.Name, Method: zip.Deflate})
		if err != nil {
			t.Fatalf("create entry: %v", err)
		}
		if filepath.Dir(entry.Name) == "payload" {
			if _, err := w.Write([]byte("substituted payload bytes")); err != nil {
				t.Fatalf("write tampered payload: %v", err)
			}
			continue
		}
		r, err := entry.Open()
		if err != nil {
			t.Fatalf("open entry: %v", err)
		}
		if _, err := io.Copy(w, r); err != nil {
			t.Fatalf("copy entry: %v", err)
		}
		r.Close()
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	reader.Close()
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("rewrite container: %v", err)
	}
}

func TestVerifyCommandReportsVerified(t *testing.T) {
	env := setupCLITestEnv(t)
	path := buildTestContainer(t, env)

	stdout, _, err := runCLI(t, env, "verify", path)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	requireContains(t, stdout, "Verify Me")
	requireContains(t, stdout, "Test Author")
	requireContains(t, stdout, "Verified: payload bytes match the declared SHA-256")
}

func TestVerifyCommandTamperedVerdict(t *testing.T) {
	env := setupCLITestEnv(t)
	path := buildTestContainer(t, env)
	corruptPayload(t, path)

	stdout, _, err := runCLI(t, env, "verify", path)
	if !errors.Is(err, errTampered) {
		t.Fatalf("expected tampered verdict error, got %v", err)
	}
	if got := exitCode(err); got != exitTampered {
		t.Fatalf("exitCode = %d, want %d", got, exitTampered)
	}
	requireContains(t, stdout, "Tampered: payload bytes do not match the declared SHA-256")
	requireContains(t, stdout, "declared:")
	requireContains(t, stdout, "computed:")
	requireContains(t, stdout, "Verify Me")
}

func TestVerifyCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	path := buildTestContainer(t, env)

	stdout, _, err := runCLI(t, env, "verify", path, "--json")
	if err != nil {
		t.Fatalf("verify --json: %v", err)
	}
	var decoded verifyOutput
	if err := json.Unmarshal([]byte(stdout), &decoded); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if decoded.Verdict != container.VerdictVerified {
		t.Fatalf("unexpected verdict %q", decoded.Verdict)
	}
	if decoded.ComputedSHA256 != decoded.Manifest.Payload.SHA256Hex {
		t.Fatalf("computed digest %q does not match declared %q", decoded.ComputedSHA256, decoded.Manifest.Payload.SHA256Hex)
	}
	if decoded.Path != path {
		t.Fatalf("unexpected path %q", decoded.Path)
	}
}

func TestVerifyCommandMissingContainer(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "verify", filepath.Join(env.baseDir, "absent.aifm"))
	if !errors.Is(err, container.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
	if got := exitCode(err); got != exitInputNotFound {
		t.Fatalf("exitCode = %d, want %d", got, exitInputNotFound)
	}
}

func TestVerifyCommandRejectsNonArchive(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.baseDir, "not_a_zip.aifm")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, _, err := runCLI(t, env, "verify", path)
	if !errors.Is(err, container.ErrMalformedContainer) {
		t.Fatalf("expected ErrMalformedContainer, got %v", err)
	}
	if got := exitCode(err); got != exitMalformedContainer {
		t.Fatalf("exitCode = %d, want %d", got, exitMalformedContainer)
	}
}

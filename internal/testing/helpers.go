package testing

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/imamik/nixdeploy/internal/util/keygen"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// GenerateTestKey returns a fresh Ed25519 private key in OpenSSH PEM format.
func GenerateTestKey(t *testing.T) string {
	t.Helper()
	keyPair, err := keygen.GenerateEd25519KeyPair("nixdeploy-test")
	if err != nil {
		t.Fatalf("failed to generate test key: %v", err)
	}
	return string(keyPair.PrivateKey)
}

// AssertPathAbsent fails the test if path exists.
func AssertPathAbsent(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected %s to be removed, stat returned %v", path, err)
	}
}

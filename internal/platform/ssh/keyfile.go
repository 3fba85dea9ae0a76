package ssh

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gossh "golang.org/x/crypto/ssh"
)

// IdentityFileName is the name of the key file written into a workspace.
const IdentityFileName = "ssh_key"

// ErrInvalidKey is returned when key material cannot be parsed.
var ErrInvalidKey = errors.New("invalid private key")

// ValidatePrivateKey checks that pemBytes holds a private key ssh can load.
// Encrypted keys are accepted; BatchMode makes ssh fail instead of prompting.
func ValidatePrivateKey(pemBytes []byte) error {
	_, err := gossh.ParseRawPrivateKey(pemBytes)
	if err == nil {
		return nil
	}
	var missing *gossh.PassphraseMissingError
	if errors.As(err, &missing) {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidKey, err)
}

// WriteIdentity validates material and writes it to dir/ssh_key with mode
// 0600, returning the file's path. The file must not already exist.
func WriteIdentity(dir, material string) (string, error) {
	if strings.TrimSpace(material) == "" {
		return "", fmt.Errorf("%w: empty key material", ErrInvalidKey)
	}
	if err := ValidatePrivateKey([]byte(material)); err != nil {
		return "", err
	}

	// OpenSSH rejects key files without a trailing newline.
	if !strings.HasSuffix(material, "\n") {
		material += "\n"
	}

	path := filepath.Join(dir, IdentityFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create identity file: %w", err)
	}

	if _, err := f.WriteString(material); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write identity file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write identity file: %w", err)
	}

	// umask can only narrow the mode; make it explicit anyway.
	if err := os.Chmod(path, 0o600); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to restrict identity file: %w", err)
	}
	return path, nil
}

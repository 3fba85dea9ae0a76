package ssh

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/imamik/nixdeploy/internal/testing"
	"github.com/imamik/nixdeploy/internal/util/keygen"
)

func TestWriteIdentity(t *testing.T) {
	dir := t.TempDir()
	key := testutil.GenerateTestKey(t)

	path, err := WriteIdentity(dir, key)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, IdentityFileName), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, key, string(data))
}

func TestWriteIdentity_AppendsNewline(t *testing.T) {
	dir := t.TempDir()
	key := strings.TrimRight(testutil.GenerateTestKey(t), "\n")

	path, err := WriteIdentity(dir, key)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "-----\n"))
}

func TestWriteIdentity_RejectsGarbage(t *testing.T) {
	dir := t.TempDir()

	_, err := WriteIdentity(dir, "not a key")
	require.ErrorIs(t, err, ErrInvalidKey)
	testutil.AssertPathAbsent(t, filepath.Join(dir, IdentityFileName))
}

func TestWriteIdentity_RejectsEmpty(t *testing.T) {
	_, err := WriteIdentity(t.TempDir(), "  \n")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestWriteIdentity_RefusesExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, IdentityFileName), []byte("x"), 0o644))

	_, err := WriteIdentity(dir, testutil.GenerateTestKey(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create identity file")
}

func TestValidatePrivateKey_RSA(t *testing.T) {
	keyPair, err := keygen.GenerateRSAKeyPair(2048, "")
	require.NoError(t, err)
	assert.NoError(t, ValidatePrivateKey(keyPair.PrivateKey))
}

func TestValidatePrivateKey_Encrypted(t *testing.T) {
	keyPair, err := keygen.GenerateEncryptedEd25519KeyPair("", []byte("secret"))
	require.NoError(t, err)
	assert.NoError(t, ValidatePrivateKey(keyPair.PrivateKey))
}

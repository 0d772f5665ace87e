package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGCS(t *testing.T) {
	obj, err := ParseGCS("gs://my-bucket/exports/2024/jan.csv")
	require.NoError(t, err)
	assert.Equal(t, Object{Bucket: "my-bucket", Name: "exports/2024/jan.csv"}, obj)

	for _, bad := range []string{"gs://", "gs://bucket", "gs://bucket/", "gs:///object", "/tmp/file.csv"} {
		_, err := ParseGCS(bad)
		assert.Error(t, err, bad)
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "jan.csv", Name("gs://bucket/exports/jan.csv"))
	assert.Equal(t, "chase.csv", Name(filepath.Join("import", "chase.csv")))
}

func TestReadFile_Local(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeffDate,Amount\n"), 0o644))

	r := NewReader(nil)
	defer r.Close()
	text, err := r.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "\ufeffDate,Amount\n", text)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := NewReader(nil).ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFile_Binary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xls")
	require.NoError(t, os.WriteFile(path, []byte{0xd0, 0xcf, 0x11, 0xe0, 0xff}, 0o644))

	_, err := NewReader(nil).ReadFile(context.Background(), path)
	assert.ErrorIs(t, err, ErrNotText)
}

func TestReadFile_BadGCSURI(t *testing.T) {
	// Fails on the URI before any client is created.
	_, err := NewReader(nil).ReadFile(context.Background(), "gs://bucket-only")
	assert.ErrorContains(t, err, "invalid GCS URI")
}

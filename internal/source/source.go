// Package source reads import files from the local disk or Google Cloud Storage.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/storage"
)

const gcsScheme = "gs://"

// ErrNotText is returned when the file is not valid UTF-8.
var ErrNotText = errors.New("file is not valid UTF-8 text")

// Object identifies a file in a GCS bucket.
type Object struct {
	Bucket string
	Name   string
}

// IsGCS reports whether uri names a gs:// object.
func IsGCS(uri string) bool {
	return strings.HasPrefix(uri, gcsScheme)
}

// ParseGCS splits gs://bucket/path/to/object.
func ParseGCS(uri string) (Object, error) {
	if !IsGCS(uri) {
		return Object{}, fmt.Errorf("not a gs:// URI: %q", uri)
	}
	bucket, name, ok := strings.Cut(strings.TrimPrefix(uri, gcsScheme), "/")
	if !ok || bucket == "" || name == "" {
		return Object{}, fmt.Errorf("invalid GCS URI %q: want gs://bucket/object", uri)
	}
	return Object{Bucket: bucket, Name: name}, nil
}

// Name returns the file name part of a path or gs:// URI.
func Name(uri string) string {
	if IsGCS(uri) {
		return path.Base(uri)
	}
	return filepath.Base(uri)
}

// Reader opens import files. The zero Reader creates a storage client on
// first gs:// read.
type Reader struct {
	client *storage.Client
}

// NewReader creates a Reader that uses client for gs:// URIs. client may be nil.
func NewReader(client *storage.Client) *Reader {
	return &Reader{client: client}
}

// Close closes the storage client, including one passed to NewReader.
func (r *Reader) Close() error {
	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}

// ReadFile returns the text of a local file or gs:// object.
func (r *Reader) ReadFile(ctx context.Context, uri string) (string, error) {
	var (
		data []byte
		err  error
	)
	if IsGCS(uri) {
		data, err = r.download(ctx, uri)
	} else {
		data, err = os.ReadFile(uri)
		if err != nil {
			err = fmt.Errorf("reading %s: %w", uri, err)
		}
	}
	if err != nil {
		return "", err
	}
	return Decode(data)
}

// Decode validates that data is UTF-8 text.
func Decode(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrNotText
	}
	return string(data), nil
}

func (r *Reader) download(ctx context.Context, uri string) ([]byte, error) {
	obj, err := ParseGCS(uri)
	if err != nil {
		return nil, err
	}

	if r.client == nil {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("create storage client: %w", err)
		}
		r.client = client
	}

	rd, err := r.client.Bucket(obj.Bucket).Object(obj.Name).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open GCS object reader: %w", err)
	}
	defer rd.Close()

	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("read GCS object: %w", err)
	}
	return data, nil
}

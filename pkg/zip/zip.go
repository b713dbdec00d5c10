// Package zip bundles gallery images into a zip archive.
package zip

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrNotDataURI is returned for photos that are not base64 data URIs.
var ErrNotDataURI = errors.New("zip: not a base64 data uri")

type Asset struct {
	Filename string
	MIME     string
	Data     []byte
}

var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// AssetFromDataURI decodes a data:<mime>;base64,<payload> photo. The file
// extension follows the MIME type.
func AssetFromDataURI(name, uri string) (Asset, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return Asset{}, ErrNotDataURI
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Asset{}, ErrNotDataURI
	}
	mime, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return Asset{}, ErrNotDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Asset{}, fmt.Errorf("zip: decode %s: %w", name, err)
	}
	ext, ok := extensions[mime]
	if !ok {
		ext = ".bin"
	}
	return Asset{Filename: name + ext, MIME: mime, Data: data}, nil
}

// ArchiveAssets writes every asset into a single in-memory archive.
func ArchiveAssets(assets []Asset) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, asset := range assets {
		w, err := zw.Create(asset.Filename)
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", asset.Filename, err)
		}
		if _, err := w.Write(asset.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", asset.Filename, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

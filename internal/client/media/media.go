// Package media turns files picked by the user into post attachments and
// avatars.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/dmitrijs2005/marketfeed/internal/client/models"
	"github.com/dmitrijs2005/marketfeed/internal/common"
	"github.com/gabriel-vasile/mimetype"
)

const (
	// DefaultMaxBytes caps the size of a single attachment.
	DefaultMaxBytes = 20 << 20
	// DefaultAvatarSize is the side of the square avatar thumbnail.
	DefaultAvatarSize = 128
)

// Load reads the file at path and classifies it. Only images and videos
// are accepted.
func Load(path string, maxBytes int64) (*models.Media, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if maxBytes > 0 && st.Size() > maxBytes {
		return nil, common.ErrMediaTooLarge
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return FromBytes(filepath.Base(path), data)
}

// FromBytes sniffs the MIME type of data and wraps it as Media.
func FromBytes(name string, data []byte) (*models.Media, error) {
	mime := detect(data)

	var kind models.MediaKind
	switch {
	case strings.HasPrefix(mime, "image/"):
		kind = models.MediaImage
	case strings.HasPrefix(mime, "video/"):
		kind = models.MediaVideo
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedMedia, mime)
	}

	return &models.Media{Kind: kind, MIME: mime, Name: name, Data: data}, nil
}

func detect(data []byte) string {
	mime, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return strings.TrimSpace(mime)
}

// AvatarDataURL crops the image in data to a size×size square and returns
// it as a PNG data: URL.
func AvatarDataURL(data []byte, size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("invalid avatar size %d", size)
	}

	img, err := decodeImage(data)
	if err != nil {
		return "", err
	}

	thumb := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return "", fmt.Errorf("encode avatar: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func decodeImage(data []byte) (image.Image, error) {
	mime := detect(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedMedia, mime)
	}

	var (
		img image.Image
		err error
	)
	if mime == "image/webp" {
		img, err = webp.Decode(bytes.NewReader(data))
	} else {
		img, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

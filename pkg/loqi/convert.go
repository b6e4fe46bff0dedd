package loqi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jpfielding/loqi.go/pkg/imgio"
)

var (
	// ErrDecode reports that the source image could not be interpreted.
	ErrDecode = errors.New("loqi: decode failed")
	// ErrSink reports that the destination could not be opened or
	// committed.
	ErrSink = errors.New("loqi: output failed")
)

// Convert decodes the image at inPath and writes it through codec to
// outPath. The stream goes to a temp file first and is renamed into
// place on success, so a failed conversion never leaves a
// complete-looking file behind.
func Convert(ctx context.Context, codec Codec, inPath, outPath string, lossiness int) error {
	raw, err := imgio.Load(inPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	slog.InfoContext(ctx, "decoded",
		"path", inPath,
		"width", raw.Width,
		"height", raw.Height,
		"channels", raw.Channels,
	)

	tmp := outPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSink, err)
	}

	bw := bufio.NewWriter(f)
	err = codec.Encode(bw, raw, lossiness)
	if err == nil {
		err = bw.Flush()
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("encode %s: %w", outPath, err)
	}
	if err := os.Rename(tmp, outPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrSink, err)
	}

	slog.InfoContext(ctx, "encoded",
		"path", outPath,
		"codec", codec.Name(),
		"lossiness", lossiness,
	)
	return nil
}

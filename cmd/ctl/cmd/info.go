package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/jpfielding/loqi.go/pkg/qoi"
)

// NewInfoCmd creates the info cobra command
func NewInfoCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "print the header of an encoded file",
		Long:  "Parses and displays the fixed header of a qoi stream (optionally zstd-wrapped). Pixel data is not decoded.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			var in io.Reader = f
			if strings.HasSuffix(args[0], ".zst") {
				zr, err := zstd.NewReader(f)
				if err != nil {
					return fmt.Errorf("zstd open failed: %w", err)
				}
				defer zr.Close()
				in = zr
			}

			hdr, err := qoi.ParseHeader(in)
			if err != nil {
				return fmt.Errorf("parse error: %w", err)
			}
			fmt.Printf("Magic: %s\n", qoi.Magic)
			fmt.Printf("Width: %d\n", hdr.Width)
			fmt.Printf("Height: %d\n", hdr.Height)
			fmt.Printf("Channels: %d\n", hdr.Channels)
			fmt.Printf("Colorspace: %d\n", hdr.Colorspace)
			return nil
		},
	}
	return cmd
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jpfielding/loqi.go/pkg/logging"
	"github.com/jpfielding/loqi.go/pkg/loqi"
)

// NewEncodeCmd creates the encode cobra command
func NewEncodeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <input> <output> [lossiness]",
		Short: "encode an image into lossy qoi",
		Long:  "Decodes a PNG/JPEG/GIF image and re-encodes it as a qoi stream, optionally merging runs of near-identical pixels.",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lossiness, _ := cmd.Flags().GetInt("lossiness")
			if len(args) == 3 {
				v, err := strconv.Atoi(args[2])
				if err != nil {
					return fmt.Errorf("lossiness must be an integer: %q", args[2])
				}
				lossiness = v
			}
			if lossiness < 0 {
				return fmt.Errorf("lossiness must be non-negative, got %d", lossiness)
			}

			codec := loqi.QOI()
			if z, _ := cmd.Flags().GetBool("zstd"); z {
				codec = loqi.QOIZstd()
			}

			runCtx := logging.AppendCtx(ctx,
				slog.Group("encode",
					slog.String("id", uuid.NewString()),
					slog.String("codec", codec.Name()),
				))
			return loqi.Convert(runCtx, codec, args[0], args[1], lossiness)
		},
	}
	pf := cmd.PersistentFlags()
	pf.IntP("lossiness", "l", 0, "per-channel drift tolerated when merging runs (0 = lossless)")
	pf.Bool("zstd", false, "post-compress the stream with zstd")
	return cmd
}

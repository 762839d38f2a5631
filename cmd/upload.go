package cmd

import (
	"fmt"
	"resizer/internal/adapters/handler"
	"resizer/internal/core/domain"
	"strings"

	"github.com/spf13/cobra"
)

func newUploadCmd(a *app) *cobra.Command {
	var (
		in   handler.UploadInput
		crop string
	)

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image and resize it",
		Long: `Uploads an image to the hosting service and submits a resize request.

Either both --width and --height, a --preset, or a single dimension with
--lock-aspect is required. With --lock-aspect the missing dimension is derived
from the uploaded image's natural size.`,
		Example: `  resizer upload photo.png --width 800 --height 600
  resizer upload photo.png --width 800 --lock-aspect --format webp
  resizer upload photo.png --preset 1280x720 --rotate 90 --filter sepia --download ./out
  resizer upload photo.png --preset 800x600 --crop 10,10,400,300`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Path = args[0]

			if crop != "" {
				c, err := parseCrop(crop)
				if err != nil {
					return err
				}
				in.Crop = c
			}

			outcome, err := a.uploadView().Run(cmd.Context(), in)
			if handler.IsAborted(err) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Upload cancelled")
				return nil
			}
			if err != nil {
				return userError(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Original:  %s\n", outcome.HostedURL)
			fmt.Fprintf(out, "Size:      %s × %s (%s)\n",
				strings.TrimSuffix(outcome.Request.Width, "px"),
				strings.TrimSuffix(outcome.Request.Height, "px"),
				strings.ToUpper(outcome.Request.OutputFormat))
			fmt.Fprintf(out, "Resized:   %s\n", outcome.Result.ResizedImageURL)
			if outcome.SavedPath != "" {
				fmt.Fprintf(out, "Saved to:  %s\n", outcome.SavedPath)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&in.Width, "width", "", "target width in pixels")
	cmd.Flags().StringVar(&in.Height, "height", "", "target height in pixels")
	cmd.Flags().StringVar(&in.Preset, "preset", "", "preset size, see 'resizer presets'")
	cmd.Flags().BoolVar(&in.AspectLocked, "lock-aspect", false, "keep the source aspect ratio")
	cmd.Flags().StringVar(&crop, "crop", "", "crop region as left,top,width,height")
	cmd.Flags().IntVar(&in.Rotate, "rotate", 0, "rotation in degrees, a multiple of 90")
	cmd.Flags().StringVar(&in.Filter, "filter", domain.NoFilter, "filter: "+strings.Join(domain.Filters, ", "))
	cmd.Flags().StringVar(&in.Format, "format", domain.DefaultFormat, "output format: jpg, png, webp or original")
	cmd.Flags().StringVar(&in.DownloadDir, "download", "", "save the resized image into this directory")

	return cmd
}

// parseCrop reads "left,top,width,height". Trailing fields may be omitted.
func parseCrop(raw string) (domain.CropInput, error) {
	parts := strings.Split(raw, ",")
	if len(parts) > 4 {
		return domain.CropInput{}, fmt.Errorf("invalid crop %q, want left,top,width,height", raw)
	}

	fields := make([]string, 4)
	copy(fields, parts)

	return domain.CropInput{
		Enabled: true,
		Left:    strings.TrimSpace(fields[0]),
		Top:     strings.TrimSpace(fields[1]),
		Width:   strings.TrimSpace(fields[2]),
		Height:  strings.TrimSpace(fields[3]),
	}, nil
}

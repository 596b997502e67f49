package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kiesman99/imagecraft/internal/bitmap"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.bmp> [file.bmp ...]",
	Short: "Check that files are 24-bit uncompressed bitmaps",
	Long: `Check the headers of one or more bitmaps. Every file is reported; the command
fails if any of them is not a 24-bit bitmap.

Examples:
  imagecraft validate photo.bmp
  imagecraft validate images/*.bmp`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	invalid := 0
	for _, path := range args {
		info, err := bitmap.ValidateFile(path)
		if err != nil {
			invalid++
			fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid: %v\n", path, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid %d-bit bitmap, %dx%d\n", path, info.BitCount, info.Width, info.AbsHeight())
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d file(s) are not valid 24-bit bitmaps", invalid, len(args))
	}
	return nil
}

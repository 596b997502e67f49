package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kiesman99/imagecraft/internal/bitmap"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.bmp>",
	Short: "Print the headers of a bitmap",
	Long: `Print the file and info headers of a 24-bit bitmap without decoding its
pixels.

Examples:
  imagecraft info photo.bmp
  imagecraft info photo.bmp --json`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().Bool("json", false, "print the headers as JSON")
}

func runInfo(cmd *cobra.Command, args []string) error {
	info, err := bitmap.ValidateFile(args[0])
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	return printInfo(cmd.OutOrStdout(), args[0], info)
}

// printInfo writes info as an aligned two column table.
func printInfo(w io.Writer, path string, info bitmap.HeaderInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	rows := []struct {
		name  string
		value any
	}{
		{"File", path},
		{"Signature", info.Signature},
		{"File size", fmt.Sprintf("%s (%d bytes)", humanize.Bytes(uint64(info.FileSize)), info.FileSize)},
		{"Pixel data offset", info.DataOffset},
		{"Info header size", info.HeaderSize},
		{"Dimensions", fmt.Sprintf("%d x %d", info.Width, info.AbsHeight())},
		{"Row order", info.Orientation()},
		{"Planes", info.Planes},
		{"Bits per pixel", info.BitCount},
		{"Compression", info.Compression},
		{"Image size", fmt.Sprintf("%s (%d bytes)", humanize.Bytes(uint64(info.ImageSize)), info.ImageSize)},
		{"Resolution", fmt.Sprintf("%d x %d px/m", info.XPixelsPerM, info.YPixelsPerM)},
		{"Colors used", info.ColorsUsed},
		{"Important colors", info.ColorsImportant},
		{"Decoded size", humanize.Bytes(info.PixelBytes())},
	}

	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%v\n", row.name, row.value)
	}
	return tw.Flush()
}

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/imagecraft/internal/config"
	"github.com/kiesman99/imagecraft/internal/craft"
	"github.com/kiesman99/imagecraft/internal/kernel"
	"github.com/kiesman99/imagecraft/internal/pipeline"
	"github.com/kiesman99/imagecraft/pkg/imageio"
)

const version = "1.0.0"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "imagecraft <input> [output]",
	Short:   "Apply a chain of filters to a 24-bit bitmap",
	Version: version,
	Long: `imagecraft reads an uncompressed 24-bit BMP image (PNG and JPEG input are
accepted too), applies the given filters in order and writes the result as BMP
or PNG.

Filters are written as name[:p1,p2,...]:
  crop:W,H            keep the top-left WxH region
  gs, grayscale       convert to grayscale
  neg, negative       invert colors
  sharp, sharpen      sharpen
  edge:T              edge detection, threshold T in [0,1]
  blur:S              Gaussian blur with sigma S > 0
  med:N, median:N     median filter with an odd window N
  vignette:I,R        darken corners, intensity and radius in [0,1]
  zoom:X,Y,A          zoom blur toward (X,Y) in [0,1], amount A > 0

Examples:
  # Grayscale then blur, written to output.bmp
  imagecraft photo.bmp -f gs -f blur:1.5

  # Crop and sharpen into a PNG in a new directory
  imagecraft photo.bmp out/photo.png -f crop:640,480 -f sharp

  # Print the bitmap headers
  imagecraft info photo.bmp

  # Start HTTP server
  imagecraft serve --port 8080`,
	Args: cobra.MaximumNArgs(2),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	},
	// If no subcommand is specified and we have args, run the process command
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no args, show help
		if len(args) == 0 {
			return cmd.Help()
		}
		return runProcess(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.imagecraft.yaml)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Int("workers", 0, "goroutines per filter (0 = number of CPUs)")

	// Output options
	rootCmd.Flags().StringP("output", "o", craft.DefaultOutput, "output file")
	rootCmd.Flags().String("format", "", "output format (bmp|png, default: from the output extension)")

	// Filter chain
	rootCmd.Flags().StringArrayP("filter", "f", nil, "filter to apply, repeat to chain (e.g. -f gs -f blur:1.5)")

	// Bind flags to viper
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	viper.BindPFlag("filters", rootCmd.Flags().Lookup("filter"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".imagecraft" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".imagecraft")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setupLogging installs a text logger on stderr at the configured level.
func setupLogging(cmd *cobra.Command) {
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: config.ParseLevel(viper.GetString("log_level")),
	}))
	slog.SetDefault(logger)
	pipeline.SetLogger(logger)

	kernel.Workers = viper.GetInt("workers")
}

func runProcess(cmd *cobra.Command, args []string) error {
	specs, err := pipeline.ParseSpecs(viper.GetStringSlice("filters"))
	if err != nil {
		return err
	}

	output := viper.GetString("output")
	if len(args) > 1 {
		output = args[1]
	}

	var format imageio.Format
	if name := viper.GetString("format"); name != "" {
		format, err = imageio.ParseFormat(name)
		if err != nil {
			return err
		}
	}

	crafter := craft.NewCrafter(&craft.Options{
		Input:   args[0],
		Output:  output,
		Format:  format,
		Filters: specs,
	})

	report, err := crafter.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Output %s: %s, %dx%d, %d filter(s), %s\n",
		strings.ToUpper(string(report.OutputFormat)), report.Output, report.Width, report.Height,
		report.Applied, humanize.Bytes(uint64(report.OutputBytes)))
	return nil
}

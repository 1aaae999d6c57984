package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/coolbutuseless/visvalingam/cmd/vwsimplify/vwsimplify"
	"github.com/coolbutuseless/visvalingam/paths"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const version = "0.1.0"

type flagSizeValue paths.Vec2

func (fs *flagSizeValue) String() string {
	return fmt.Sprintf("%g,%g", fs[0], fs[1])
}

func (fs *flagSizeValue) Type() string {
	return "size"
}

func parseSizePart(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func (fs *flagSizeValue) Set(s string) error {
	var err error
	parts := strings.Split(s, ",")
	if len(parts) > 2 {
		return fmt.Errorf("can't parse %q as size", s)
	}
	if fs[0], err = parseSizePart(parts[0]); err != nil {
		return err
	}
	if len(parts) == 2 {
		if fs[1], err = parseSizePart(parts[1]); err != nil {
			return err
		}
	}
	return nil
}

// flags
var (
	flagConfig     string
	flagVerbose    bool
	flagIn         string
	flagOut        string
	flagKeep       int
	flagRatio      float64
	flagMinArea    float64
	flagSVGDrawing bool
	flagSize       flagSizeValue
)

var rootCmd = &cobra.Command{
	Use:           "vwsimplify",
	Short:         "Simplify polylines with Visvalingam's effective area method.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

var simplifyCmd = &cobra.Command{
	Use:   "simplify",
	Short: "Remove the least significant points from each path.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		cfg.Areas = false
		return vwsimplify.Convert(cfg)
	},
}

var areasCmd = &cobra.Command{
	Use:   "areas",
	Short: "Write every point with its effective area.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		cfg.Areas = true
		return vwsimplify.Convert(cfg)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vwsimplify",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vwsimplify v%s\n", version)
	},
}

// loadConfig reads the config file, if any, and then applies
// the flags that were set explicitly on top of it.
func loadConfig(fs *pflag.FlagSet) (*vwsimplify.Config, error) {
	cfg := &vwsimplify.Config{}
	if flagConfig != "" {
		var err error
		if cfg, err = vwsimplify.ReadConfigFile(flagConfig); err != nil {
			return nil, err
		}
	}
	set := func(name string, f func()) {
		if fs.Changed(name) {
			f()
		}
	}
	set("in", func() { cfg.In = flagIn })
	set("out", func() { cfg.Out = flagOut })
	set("keep", func() { cfg.Keep = flagKeep })
	set("ratio", func() { cfg.Ratio = flagRatio })
	set("min-area", func() { cfg.MinArea = flagMinArea })
	set("svg-drawing", func() { cfg.SVGDrawing = flagSVGDrawing })
	set("size", func() { cfg.Size = paths.Vec2(flagSize) })
	if cfg.Out == "" {
		cfg.Out = flagOut
	}
	return cfg, nil
}

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "TOML configuration file")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log debug output")
	pf.StringVar(&flagIn, "in", "", "input file (.svg, .geojson or x y text)")
	pf.StringVar(&flagOut, "out", "out.svg", "output file")
	pf.BoolVar(&flagSVGDrawing, "svg-drawing", false, "parse svg input with the drawing instruction parser")
	pf.Var(&flagSize, "size", "rescale output to width,height")

	simplifyCmd.Flags().IntVar(&flagKeep, "keep", 0, "points to keep per path")
	simplifyCmd.Flags().Float64Var(&flagRatio, "ratio", 0, "fraction of points to keep per path")
	simplifyCmd.Flags().Float64Var(&flagMinArea, "min-area", 0, "keep points with at least this effective area")

	rootCmd.AddCommand(simplifyCmd, areasCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

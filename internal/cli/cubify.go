package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/eodatahub/hazcube/internal/cube"
	"github.com/eodatahub/hazcube/internal/ui"
)

var (
	cubifyIndicator  string
	cubifySplitYears bool
)

var cubifyCmd = &cobra.Command{
	Use:   "cubify <store-path> [output-dir]",
	Short: "Turn an OS-Climate hazard Zarr store into data cube Zarr stores",
	Long: `Cubify reads a flat per-scenario/per-year hazard indicator store and
merges its arrays into one multidimensional cube store per year (or one
combined store with --split-years=false).

The output directory defaults to output_dir from the config file.

Examples:
  hazcube cubify ./days_tas_above.zarr ./cubes -i days_tas_above
  hazcube cubify ./degree_days.zarr ./cubes -i degree_days --split-years=false`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		storePath := args[0]
		outputDir := cfg.OutputDir
		if len(args) == 2 {
			outputDir = args[1]
		}
		if outputDir == "" {
			return fmt.Errorf("no output directory given and no output_dir configured")
		}

		desc, ok := registry.Get(cubifyIndicator)
		if !ok {
			return fmt.Errorf("unknown indicator %q; registered indicators: %s",
				cubifyIndicator, strings.Join(registry.Names(), ", "))
		}

		outputPaths, err := cube.Cubify(cube.Options{
			StorePath:  storePath,
			OutputDir:  outputDir,
			Descriptor: desc,
			SplitYears: cubifySplitYears,
			Log:        log,
		})
		if err != nil {
			return err
		}

		years := make([]int, 0, len(outputPaths))
		for year := range outputPaths {
			years = append(years, year)
		}
		sort.Ints(years)

		p := ui.NewPrinter()
		p.Header("Generated the following data cube stores:")
		for _, year := range years {
			p.Path(outputPaths[year])
		}
		return nil
	},
}

func addCubifyFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&cubifyIndicator, "indicator", "i", "", "name of the indicator to convert (required)")
	fs.BoolVar(&cubifySplitYears, "split-years", true, "split output cube stores by year")
}

func init() {
	addCubifyFlags(cubifyCmd.Flags())
	_ = cubifyCmd.MarkFlagRequired("indicator")
	rootCmd.AddCommand(cubifyCmd)
}

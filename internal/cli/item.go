package cli

import (
	"github.com/spf13/cobra"

	"github.com/eodatahub/hazcube/internal/stac"
	"github.com/eodatahub/hazcube/internal/ui"
)

var createItemCmd = &cobra.Command{
	Use:   "create-item <source> <destination>",
	Short: "Create a STAC Item from a cube store",
	Long: `Create-item opens one cube store and writes a STAC Item JSON document
with one data asset referencing the store, including the array-open
parameters consumers need.

Example:
  hazcube create-item ./cubes/days_tas_above_2030.zarr item.json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, destination := args[0], args[1]

		ds, err := stac.Open(source)
		if err != nil {
			return err
		}
		item, err := stac.CreateItem(ds, source)
		if err != nil {
			return err
		}
		if err := stac.SaveJSON(destination, item); err != nil {
			return err
		}

		p := ui.NewPrinter()
		p.Header("Wrote STAC Item:")
		p.Path(destination)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createItemCmd)
}

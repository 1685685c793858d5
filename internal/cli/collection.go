package cli

import (
	"github.com/spf13/cobra"

	"github.com/eodatahub/hazcube/internal/stac"
	"github.com/eodatahub/hazcube/internal/ui"
)

var createCollectionCmd = &cobra.Command{
	Use:   "create-collection <source>... <destination>",
	Short: "Create a STAC Collection from one or more cube stores",
	Long: `Create-collection opens one or more cube stores of the same indicator,
merges their time axes, and writes a STAC Collection JSON document
describing the combined extent and cube dimensions.

Examples:
  hazcube create-collection ./cubes/days_tas_above_2030.zarr collection.json
  hazcube create-collection ./cubes/*.zarr collection.json`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, destination := args[:len(args)-1], args[len(args)-1]

		ds, err := stac.OpenAll(sources)
		if err != nil {
			return err
		}
		collection, err := stac.CreateCollection(ds, registry, stac.CollectionOptions{
			Render: cfg.RenderEnabled(),
		})
		if err != nil {
			return err
		}
		if err := stac.SaveJSON(destination, collection); err != nil {
			return err
		}

		p := ui.NewPrinter()
		p.Header("Wrote STAC Collection:")
		p.Path(destination)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCollectionCmd)
}

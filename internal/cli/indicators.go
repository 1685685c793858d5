package cli

import (
	"github.com/spf13/cobra"

	"github.com/eodatahub/hazcube/internal/ui"
)

var indicatorsCmd = &cobra.Command{
	Use:   "indicators",
	Short: "List registered indicator descriptors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := registry.Names()

		keyWidth := 0
		for _, name := range names {
			if len(name) > keyWidth {
				keyWidth = len(name)
			}
		}

		p := ui.NewPrinter()
		p.Header("Registered indicators:")
		for _, name := range names {
			desc, _ := registry.Get(name)
			p.KeyValue(name, desc.Title, keyWidth)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indicatorsCmd)
}

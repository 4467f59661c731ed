package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"touchkeys/theme"
	"touchkeys/touch"
	"touchkeys/widgets"
)

func init() {
	layoutCmd.Flags().Int32Var(&layoutTouchWidth, "touch-width", 0, "device x extent (default: the layout's bounding box)")
	layoutCmd.Flags().Int32Var(&layoutTouchHeight, "touch-height", 0, "device y extent (default: the layout's bounding box)")
	layoutCmd.Flags().IntVar(&layoutCols, "cols", 60, "preview width in characters")
	layoutCmd.Flags().IntVar(&layoutRows, "rows", 10, "preview height in characters")
	rootCmd.AddCommand(layoutCmd)
}

var (
	layoutTouchWidth  int32
	layoutTouchHeight int32
	layoutCols        int
	layoutRows        int
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the configured note layout",
	Long: `Prints every region's note, color and outline scaled to the configured
render size, followed by a colored preview.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		th, err := theme.Load(cfg.Theme.Palette)
		if err != nil {
			return err
		}

		a, err := cfg.BuildLayout(layoutTouchWidth, layoutTouchHeight)
		if err != nil {
			return err
		}
		if layoutTouchWidth <= 0 || layoutTouchHeight <= 0 {
			w, h := widgets.Bounds(a)
			if a, err = cfg.BuildLayout(w, h); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d regions, rendered at %dx%d\n\n", a.Len(), cfg.Render.Width, cfg.Render.Height)
		fmt.Fprintln(out, widgets.RenderElements(a.Elements(cfg.Render.Width, cfg.Render.Height)))
		fmt.Fprintln(out)
		fmt.Fprintln(out, widgets.RenderSurface(a, touch.Slots[touch.TouchState[touch.Position]]{}, layoutCols, layoutRows, th))
		return nil
	},
}

package cmd

import (
	"dmdclock/hal"

	"github.com/spf13/cobra"
)

var periphCfg = hal.DefaultPeriphConfig()

var oledCmd = &cobra.Command{
	Use:   "oled",
	Short: "Run the clock on an SSD1322 OLED with GPIO buttons",
	Long: `Run the clock on a Linux board through periph.io: a 256x64 SSD1322 panel on
SPI shows each dot as a 2x2 block, and four active-low push buttons with
pull-ups act as the front panel.`,
	RunE: runOLED,
}

func init() {
	f := oledCmd.Flags()
	f.StringVar(&periphCfg.SPI, "spi", periphCfg.SPI, "SPI port name (empty = first)")
	f.StringVar(&periphCfg.DC, "dc", periphCfg.DC, "data/command GPIO")
	f.StringVar(&periphCfg.RST, "rst", periphCfg.RST, "reset GPIO (empty = none)")
	f.StringVar(&periphCfg.Buttons[hal.ButtonMenu], "btn-menu", periphCfg.Buttons[hal.ButtonMenu], "menu button GPIO")
	f.StringVar(&periphCfg.Buttons[hal.ButtonMinus], "btn-minus", periphCfg.Buttons[hal.ButtonMinus], "minus button GPIO")
	f.StringVar(&periphCfg.Buttons[hal.ButtonPlus], "btn-plus", periphCfg.Buttons[hal.ButtonPlus], "plus button GPIO")
	f.StringVar(&periphCfg.Buttons[hal.ButtonEnter], "btn-enter", periphCfg.Buttons[hal.ButtonEnter], "enter button GPIO")
	f.IntVar(&periphCfg.Hz, "hz", periphCfg.Hz, "frame rate")
	rootCmd.AddCommand(oledCmd)
}

func runOLED(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()
	return quiet(hal.RunPeriph(ctx, hostConfig(cmd), periphCfg, newApp))
}

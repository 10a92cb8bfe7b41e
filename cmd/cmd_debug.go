// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jcodagnone/cajeros/banamex"
	"github.com/jcodagnone/cajeros/spatial"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var debugRegion string

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

var debugRawCmd = &cobra.Command{
	Use:   "raw [archivo]",
	Short: "Interpreta una respuesta de municipio ya descargada",
	Long: `Lee una respuesta de la lista de cajeros de un municipio (un archivo .raw o
stdin) e imprime en stdout la colección GeoJSON resultante.

$ cajeros debug raw mx/colima/raw/banamex-10.raw --region colima
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		region, err := banamex.Find(debugRegion)
		if err != nil {
			return err
		}

		input := io.Reader(os.Stdin)
		municipalityID := "-"

		if len(args) > 0 && args[0] != "-" {
			f, err := os.Open(filepath.Clean(args[0]))
			if err != nil {
				return err
			}
			defer f.Close()

			input = f
			municipalityID = municipalityFromRawName(args[0])
		} else if isatty.IsTerminal(os.Stdin.Fd()) {
			fmt.Fprintln(os.Stderr, "Ingrese la respuesta a analizar, Ctrl-D para terminar…")
		}

		body, err := io.ReadAll(input)
		if err != nil {
			return err
		}

		facilities, err := banamex.Facilities(string(body), region, municipalityID)
		if err != nil {
			return err
		}

		output := banamex.NewRegionOutput(region)
		output.Append(facilities...)

		return output.FeatureCollection().Encode(os.Stdout)
	},
}

// municipalityFromRawName extracts "10" out of ".../banamex-10.raw".
func municipalityFromRawName(path string) string {
	name := filepath.Base(path)
	name = name[:len(name)-len(filepath.Ext(name))]

	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '-' {
			return name[i+1:]
		}
	}

	return name
}

var debugPointCmd = &cobra.Command{
	Use:   "point <lng> <lat>",
	Short: "Muestra la representación WKT y las celdas H3 de una coordenada",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		p, err := spatial.ParsePoint(args[0], args[1])
		if err != nil {
			return err
		}

		wkt, err := p.WKT()
		if err != nil {
			return err
		}

		cells, err := p.H3Cells()
		if err != nil {
			return err
		}

		fmt.Println(wkt)

		for i, cell := range cells {
			fmt.Printf("h3_res%d\t%x\n", i+1, cell)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugRawCmd)
	debugCmd.AddCommand(debugPointCmd)

	debugRawCmd.Flags().StringVar(
		&debugRegion,
		"region",
		"distrito-federal",
		"Estado al que pertenece la respuesta",
	)
}

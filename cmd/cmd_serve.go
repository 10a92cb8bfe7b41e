// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/jcodagnone/cajeros/banamex"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Publica por HTTP las colecciones GeoJSON generadas",
	Long: `Expone una API de solo lectura sobre <output-dir>:

  GET /api/regions                      estados y si ya fueron descargados
  GET /api/regions/:estado              colección GeoJSON del estado
  GET /api/regions/:estado/nearest      cajeros más cercanos a ?lat=&lng=&limit=
`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return banamex.NewServer(banamexOptions.OutputDir, banamexOptions.Source).Run(serveAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "Dirección donde escuchar")
}

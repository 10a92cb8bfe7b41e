// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "cajeros",
	Short: "ubicación de cajeros automáticos y sucursales bancarias de México",
	Long: `
cajeros descarga del localizador de Banamex los cajeros automáticos y sucursales
de cada estado de la República, y los publica como colecciones GeoJSON.

La configuración puede darse con flags, con variables de entorno con prefijo
CAJEROS_ (por ejemplo CAJEROS_OUTPUT_DIR) o con un archivo cajeros.yaml.
`,
	SilenceUsage:      true,
	PersistentPreRunE: applyConfig,
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"Archivo de configuración (por omisión ./cajeros.yaml si existe)",
	)
	rootCmd.PersistentFlags().StringVar(
		&banamexOptions.OutputDir,
		"output-dir",
		"mx",
		"Directorio base donde almacenar los archivos de cada estado",
	)
	rootCmd.PersistentFlags().StringVar(
		&banamexOptions.Source,
		"source",
		"banamex",
		"Prefijo de los archivos generados",
	)
}

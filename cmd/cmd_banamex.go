// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/jcodagnone/cajeros/banamex"
	"github.com/spf13/cobra"
)

var banamexOptions = &banamex.ClientOptions{}

// dbPath is the optional DuckDB catalog updated along with the GeoJSON files.
var dbPath string

var banamexCmd = &cobra.Command{
	Use:   "banamex",
	Short: "Cajeros y sucursales de Banamex",
}

var banamexRegionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Lista los estados disponibles",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, b, c := strings.Repeat("─", 2), strings.Repeat("─", 19), strings.Repeat("─", 20)
		fmt.Println("Estados disponibles:")
		fmt.Printf("╭─%2s─┬─%-19s─┬─%-20s╮\n", a, b, c)
		fmt.Printf("│ %2s │ %-19s │ %-20s│\n", "Id", "Identificador", "Nombre")
		fmt.Printf("├─%2s─┼─%-19s─┼─%-20s┤\n", a, b, c)
		err := banamex.Each(func(r banamex.Region) error {
			fmt.Printf("│ %2d │ %-19s │ %-20s│\n", r.ID, r.Slug, r.DisplayName())

			return nil
		})
		fmt.Printf("╰─%2s─┴─%-19s─┴─%-20s╯\n", a, b, c)

		return err
	},
}

func regionArg(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return err
	}

	if len(args) > 0 {
		if _, err := banamex.Find(args[0]); err != nil {
			return err
		}
	}

	return nil
}

func requiredRegionArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}

	return regionArg(cmd, args)
}

func userAgent() string {
	if banamexOptions.UserAgent != "" {
		return banamexOptions.UserAgent
	}

	return fmt.Sprintf("cajeros/%s (+https://github.com/jcodagnone/cajeros)", Version)
}

// openRepository opens the catalog, if one was asked for.
func openRepository() (*sql.DB, banamex.FacilityRepository, error) {
	if dbPath == "" || banamexOptions.DryRun {
		return nil, nil, nil
	}

	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	repo := banamex.NewSQLFacilityRepository(db)
	if err := repo.CreateSchema(); err != nil {
		return nil, nil, errors.Join(fmt.Errorf("creating table: %w", err), db.Close())
	}

	return db, repo, nil
}

var banamexMunicipalitiesCmd = &cobra.Command{
	Use:   "municipalities <estado>",
	Short: "Lista los municipios de un estado",
	Args:  requiredRegionArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		region, err := banamex.Find(args[0])
		if err != nil {
			return err
		}

		banamexOptions.UserAgent = userAgent()
		c := banamex.NewClient(banamexOptions, nil)

		municipalities, err := c.Municipalities(cmd.Context(), region)
		if err != nil {
			return err
		}

		for _, m := range municipalities {
			fmt.Printf("%s\t%s\n", m.ID, m.Name)
		}

		return nil
	},
}

var banamexFetchCmd = &cobra.Command{
	Use:   "fetch [estado]",
	Short: "Descarga los cajeros de un estado, o de todos si no se indica ninguno",
	Long: `Descarga, municipio por municipio, los cajeros y sucursales de un estado.

Por cada estado se genera <output-dir>/<estado>/<source>.geojson, y la respuesta
original de cada municipio queda en <output-dir>/<estado>/raw/.

$ cajeros banamex fetch colima --delay 2s --db cajeros.duckdb
`,
	Args: regionArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		var q string
		if len(args) > 0 {
			q = args[0]
		}

		regions, err := banamex.Select(q)
		if err != nil {
			return err
		}

		if len(banamexOptions.Municipalities) > 0 && len(regions) != 1 {
			return errors.New("--municipality requires a single region")
		}

		db, repo, err := openRepository()
		if err != nil {
			return err
		}

		if db != nil {
			defer db.Close()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		banamexOptions.UserAgent = userAgent()
		c := banamex.NewClient(banamexOptions, repo)
		err = c.Update(ctx, regions)

		log.Printf(
			"Total metrics - %d regions (%d failed), %d municipalities (%d failed), %d facilities, %d duplicated coordinates",
			c.Metrics.Regions,
			c.Metrics.RegionsFailed,
			c.Metrics.Municipalities,
			c.Metrics.MunicipalitiesFailed,
			c.Metrics.Facilities,
			c.Metrics.Duplicates,
		)

		return err
	},
}

var banamexRebuildCmd = &cobra.Command{
	Use:   "rebuild [estado]",
	Short: "Regenera el GeoJSON a partir de las respuestas ya descargadas, sin acceder a la red",
	Args:  regionArg,
	RunE: func(_ *cobra.Command, args []string) error {
		var q string
		if len(args) > 0 {
			q = args[0]
		}

		regions, err := banamex.Select(q)
		if err != nil {
			return err
		}

		db, repo, err := openRepository()
		if err != nil {
			return err
		}

		if db != nil {
			defer db.Close()
		}

		var metrics banamex.ClientMetrics

		var errs []error

		for i := range regions {
			// rebuilding everything skips the regions never fetched
			store := banamex.NewFileStore(banamexOptions.OutputDir, banamexOptions.Source, &regions[i])
			if ids, err := store.RawMunicipalities(); len(args) == 0 && err == nil && len(ids) == 0 {
				continue
			}

			c := banamex.NewClient(banamexOptions, repo)
			if err := c.Rebuild(&regions[i]); err != nil {
				errs = append(errs, err)
			}

			metrics.Merge(&c.Metrics)
		}

		log.Printf("Rebuilt %d regions - %d facilities, %d municipalities failed",
			metrics.Regions, metrics.Facilities, metrics.MunicipalitiesFailed)

		return errors.Join(errs...)
	},
}

func init() {
	rootCmd.AddCommand(banamexCmd)
	banamexCmd.AddCommand(banamexRegionsCmd)
	banamexCmd.AddCommand(banamexMunicipalitiesCmd)
	banamexCmd.AddCommand(banamexFetchCmd)
	banamexCmd.AddCommand(banamexRebuildCmd)

	banamexCmd.PersistentFlags().StringVar(
		&banamexOptions.BaseURL,
		"base-url",
		banamex.DefaultBaseURL,
		"URL del localizador de Banamex",
	)
	banamexCmd.PersistentFlags().StringVar(
		&banamexOptions.UserAgent,
		"user-agent",
		"",
		"User-Agent de los pedidos HTTP",
	)
	banamexCmd.PersistentFlags().StringVar(
		&banamexOptions.Charset,
		"charset",
		"",
		"Codificación de las respuestas; por omisión la del encabezado Content-Type",
	)
	banamexCmd.PersistentFlags().DurationVar(
		&banamexOptions.Timeout,
		"timeout",
		60*time.Second,
		"Tiempo máximo de cada pedido HTTP",
	)
	banamexCmd.PersistentFlags().BoolVar(
		&banamexOptions.EnableHTTPTrace,
		"trace-http",
		false,
		"Imprime en stderr los pedidos y respuestas HTTP",
	)
	banamexCmd.PersistentFlags().BoolVar(
		&banamexOptions.EnableHTTPBodyTrace,
		"trace-http-body",
		false,
		"Incluye el cuerpo en las trazas HTTP",
	)
	banamexCmd.PersistentFlags().StringVar(
		&dbPath,
		"db",
		"",
		"Base de datos DuckDB donde mantener el catálogo de cajeros",
	)
	banamexCmd.PersistentFlags().BoolVar(
		&banamexOptions.DryRun,
		"dry-run",
		false,
		"No persiste ningun cambio",
	)

	banamexFetchCmd.Flags().DurationVar(
		&banamexOptions.Delay,
		"delay",
		5*time.Second,
		"Pausa entre los pedidos de dos municipios",
	)
	banamexFetchCmd.Flags().StringSliceVar(
		&banamexOptions.Municipalities,
		"municipality",
		nil,
		"Descarga solo los municipios indicados (requiere un único estado)",
	)
}

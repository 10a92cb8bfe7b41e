// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "CAJEROS"

var configFile string

// newViper returns a viper instance reading CAJEROS_* variables and, when
// present, the configuration file.
func newViper(file string) (*viper.Viper, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("cajeros")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading configuration: %w", err)
		}
	}

	return v, nil
}

// applyConfig fills every flag not given in the command line with the value
// found in the environment or the configuration file. Flags win.
func applyConfig(cmd *cobra.Command, _ []string) error {
	v, err := newViper(configFile)
	if err != nil {
		return err
	}

	return applyViper(v, cmd.Flags())
}

func applyViper(v *viper.Viper, flags *pflag.FlagSet) error {
	var errs []error

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "config" || !v.IsSet(f.Name) {
			return
		}

		value := v.GetString(f.Name)
		if f.Value.Type() == "stringSlice" {
			value = strings.Join(v.GetStringSlice(f.Name), ",")
		}

		if err := flags.Set(f.Name, value); err != nil {
			errs = append(errs, fmt.Errorf("configuration %s: %w", f.Name, err))
		}
	})

	return errors.Join(errs...)
}

// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/jcodagnone/cajeros/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}

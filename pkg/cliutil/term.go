// Copyright (C) 2020  Ambassador Labs (for Telepresence)
//
// SPDX-License-Identifier: Apache-2.0
//
// Based on
// https://github.com/telepresenceio/telepresence/blob/b6dfa04ff014915b47386191cc3d8b1352522fea/pkg/client/cli/command_group.go#L35-L63

package cliutil

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// GetTerminalWidth returns the column count that output should be fit to, or
// 0 when stdout isn't a terminal (meaning: don't truncate or wrap at all).
func GetTerminalWidth() int {
	// Copyright note: This code was originally written by LukeShu for Telepresence.

	// A COLUMNS override from the shell or the user wins.
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil {
		return cols
	}
	if cols, _, err := term.GetSize(1); err == nil {
		return cols
	}
	// A terminal whose size can't be read still gets a sane default.
	if term.IsTerminal(1) {
		return 80
	}
	return 0
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import "github.com/spf13/afero"

// FsFactory returns the filesystem used to look for the dependency marker.
// Paths are relative to the current working directory.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

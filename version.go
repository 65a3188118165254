package rulegen

import _ "embed"

// Version is the release of the rulegen module.
//
//go:embed VERSION
var Version string

package lttoolbox

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via
// `-ldflags "-X 'github.com/taruen/lttoolbox/src.LTTOOLBOX_VERSION=X'"`
var LTTOOLBOX_VERSION string

func getBuildSettingOrDefault(bi *debug.BuildInfo, key string, defaultValue string) string {
	if bi == nil {
		return defaultValue
	}
	for _, bs := range bi.Settings {
		if bs.Key == key {
			return bs.Value
		}
	}

	return defaultValue
}

func PrintVersion(name string) {
	var buildInfo, _ = debug.ReadBuildInfo()

	var buildCommit = getBuildSettingOrDefault(buildInfo, "vcs.revision", "UNKNOWN")

	var version = LTTOOLBOX_VERSION
	if version == "" {
		version = "!UNKNOWN!"
	}

	fmt.Printf("%s version %s (revision %s)\n", name, version, buildCommit)
}

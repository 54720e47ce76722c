package utils

import (
	"runtime/debug"
)

const (
	developmentVersion  = "dev"
	shortRevisionLength = 12
	vcsRevisionKey      = "vcs.revision"
	vcsModifiedKey      = "vcs.modified"
	modifiedSuffix      = "-dirty"
)

// ApplicationVersion resolves the version reported by --version. Released
// binaries carry a module version from the Go toolchain; local builds fall
// back to the embedded VCS revision, or to a development marker when no
// build information is available.
func ApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return developmentVersion
	}
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}

	revision := ""
	modified := false
	for _, buildSetting := range buildInfo.Settings {
		switch buildSetting.Key {
		case vcsRevisionKey:
			revision = buildSetting.Value
		case vcsModifiedKey:
			modified = buildSetting.Value == "true"
		}
	}
	if revision == "" {
		return developmentVersion
	}
	if len(revision) > shortRevisionLength {
		revision = revision[:shortRevisionLength]
	}
	if modified {
		revision += modifiedSuffix
	}
	return revision
}

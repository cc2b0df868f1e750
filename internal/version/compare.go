package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-formula/pkg/errors"
)

// CheckConfigCompatibility checks whether a workspace config written for configVersion
// can be loaded by a library at libraryVersion.
//
// Compatibility Rules:
//   - If either version is "main" (development build), the check is skipped
//   - An empty config version is accepted (unversioned configs predate the field)
//   - Major versions must match exactly
//   - The config's minor version must not be newer than the library's
//   - Patch versions are ignored
//
// Examples:
//   - Library 1.2.0, Config 1.2.0 -> OK
//   - Library 1.3.0, Config 1.2.7 -> OK (older config)
//   - Library 1.2.0, Config 1.3.0 -> ERROR (config needs a newer library)
//   - Library 2.0.0, Config 1.2.0 -> ERROR (major differs)
func CheckConfigCompatibility(libraryVersion, configVersion string) error {
	libraryVersion = strings.TrimPrefix(strings.TrimSpace(libraryVersion), "v")
	configVersion = strings.TrimPrefix(strings.TrimSpace(configVersion), "v")

	if configVersion == "" || libraryVersion == "main" || configVersion == "main" {
		return nil
	}

	library, err := semver.NewVersion(libraryVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid library version '%s'", libraryVersion)
	}

	config, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", configVersion)
	}

	if library.Major() != config.Major() {
		return errors.Newf(errors.ErrCodeVersionMismatch, "major version mismatch: library is %d.x.x but config requires %d.x.x",
			library.Major(), config.Major())
	}

	if config.Minor() > library.Minor() {
		return errors.Newf(errors.ErrCodeVersionMismatch, "config requires %d.%d.x but library is %d.%d.x",
			config.Major(), config.Minor(), library.Major(), library.Minor())
	}

	return nil
}

package manifest

import "errors"

// Sentinel errors for the manifest package.
var (
	// ErrInvalidManifest indicates package.json content could not be parsed.
	ErrInvalidManifest = errors.New("manifest: invalid package.json")

	// ErrInvalidRange indicates a dependency range is not a valid semver constraint.
	ErrInvalidRange = errors.New("manifest: invalid dependency range")
)

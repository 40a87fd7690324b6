package manifest

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// CheckRanges verifies that every declared dependency range parses as a
// semver constraint. All invalid ranges are reported together.
func CheckRanges(p *PackageJSON) error {
	var errs []error
	for _, group := range []map[string]string{p.Dependencies, p.DevDependencies} {
		for _, name := range sortedKeys(group) {
			if _, err := semver.NewConstraint(group[name]); err != nil {
				errs = append(errs, fmt.Errorf("%w: %s@%q: %v", ErrInvalidRange, name, group[name], err))
			}
		}
	}
	return errors.Join(errs...)
}

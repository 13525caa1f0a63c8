package testHelpers

import "apisport/internal/projectpath"

func projectRoot() string {
	return projectpath.Root
}

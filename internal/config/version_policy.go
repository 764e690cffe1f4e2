package config

import (
	"slices"
	"strings"
)

// CurrentConfigVersion is written by `salute batch` fixtures and docs.
const CurrentConfigVersion = "1"

var supportedConfigVersions = []string{CurrentConfigVersion}

// IsSupportedConfigVersion reports whether v can be loaded.
func IsSupportedConfigVersion(v string) bool {
	return slices.Contains(supportedConfigVersions, v)
}

// SupportedConfigVersionsCSV lists supported versions for error messages.
func SupportedConfigVersionsCSV() string {
	return strings.Join(supportedConfigVersions, ", ")
}

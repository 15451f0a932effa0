package provider

import "strings"

// Package is one search result from a provider. Name is the bare package name used for matching.
type Package struct {
	Provider    string
	Repository  string
	Name        string
	Version     string
	Description string
	Installed   bool
}

// FullName returns "repository/name", or just the name when the repository is unknown
func (p Package) FullName() string {
	if p.Repository == "" {
		return p.Name
	}
	return p.Repository + "/" + p.Name
}

// Key uniquely identifies a package across providers
func (p Package) Key() string {
	return p.Provider + ":" + p.FullName()
}

// PureName strips any "repository/" prefix from name
func PureName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}

package provider

import (
	"strings"

	"github.com/johnstarich/go/regext"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	listingHeader = regext.MustCompile(`
		^
		(?: (?P<repo> [[:alnum:]._-]+ ) / )?   # repository, yay always prints one
		(?P<name> [[:alnum:]@._+-]+ )
		\s+
		(?P<version> [[:alnum:]] \S* )
		(?P<extra> .* )                # votes, popularity, groups, install markers
		$
	`)
	installedMarker = regext.MustCompile(`(?i) [\[(] installed`)
	detailLine      = regext.MustCompile(`
		^
		(?P<key> [^\s:] [^:]*? )
		\s+ : \s?
		(?P<value> .* )
		$
	`)
)

// decodeLossy converts command output to valid UTF-8, replacing invalid bytes with U+FFFD
func decodeLossy(b []byte) string {
	decoded, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(decoded)
}

func isIndented(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}

// ParseListing parses "-Ss" style output: a header line "repo/name version [extra]" followed by indented description lines.
// Lines that aren't recognized are skipped, along with their descriptions.
func ParseListing(output []byte, providerName string) []Package {
	packages := []Package{}
	current := -1
	for _, line := range strings.Split(decodeLossy(output), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isIndented(line) {
			if current >= 0 {
				description := strings.TrimSpace(line)
				if packages[current].Description != "" {
					description = packages[current].Description + " " + description
				}
				packages[current].Description = description
			}
			continue
		}

		match := listingHeader.FindStringSubmatch(line)
		if match == nil {
			current = -1
			continue
		}
		packages = append(packages, Package{
			Provider:   providerName,
			Repository: match[listingHeader.SubexpIndex("repo")],
			Name:       match[listingHeader.SubexpIndex("name")],
			Version:    match[listingHeader.SubexpIndex("version")],
			Installed:  installedMarker.MatchString(match[listingHeader.SubexpIndex("extra")]),
		})
		current = len(packages) - 1
	}
	return packages
}

// ParseDetails parses "-Si" style output of "Key : Value" lines. Indented lines continue the previous value.
// Returns ErrNoDetails if no fields were found.
func ParseDetails(output []byte) ([]Field, error) {
	var fields []Field
	for _, line := range strings.Split(decodeLossy(output), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isIndented(line) {
			if len(fields) > 0 {
				last := &fields[len(fields)-1]
				last.Value += "\n" + strings.TrimSpace(line)
			}
			continue
		}
		match := detailLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		fields = append(fields, Field{
			Key:   strings.TrimSpace(match[detailLine.SubexpIndex("key")]),
			Value: strings.TrimSpace(match[detailLine.SubexpIndex("value")]),
		})
	}
	if len(fields) == 0 {
		return nil, ErrNoDetails
	}
	return fields, nil
}

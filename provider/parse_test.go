package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pacmanListing = `core/linux 6.10.7.arch1-1 [installed]
    The Linux kernel and modules
core/linux-lts 6.6.48-1
    The LTS Linux kernel and modules
extra/linux-tools 6.10-1 (linux-tools) [installed: 6.9-1]
    Linux kernel tools
`

const yayListing = "aur/firefox-nightly 131.0a1.20240828-1 (+123 1.05) (Out-of-date: 2024-08-01)\r\n" +
	"    Fast, Private & Safe Web Browser - Nightly build\r\n" +
	"aur/yay-bin 12.3.5-1 (+800 10.25) (Installed)\r\n" +
	"    Yet another yogurt. Pacman wrapper and AUR helper written in go.\r\n"

func TestParseListing(t *testing.T) {
	for _, tc := range []struct {
		description string
		output      string
		expect      []Package
	}{
		{
			description: "pacman",
			output:      pacmanListing,
			expect: []Package{
				{Provider: "pacman", Repository: "core", Name: "linux", Version: "6.10.7.arch1-1", Description: "The Linux kernel and modules", Installed: true},
				{Provider: "pacman", Repository: "core", Name: "linux-lts", Version: "6.6.48-1", Description: "The LTS Linux kernel and modules"},
				{Provider: "pacman", Repository: "extra", Name: "linux-tools", Version: "6.10-1", Description: "Linux kernel tools", Installed: true},
			},
		},
		{
			description: "yay",
			output:      yayListing,
			expect: []Package{
				{Provider: "pacman", Repository: "aur", Name: "firefox-nightly", Version: "131.0a1.20240828-1", Description: "Fast, Private & Safe Web Browser - Nightly build"},
				{Provider: "pacman", Repository: "aur", Name: "yay-bin", Version: "12.3.5-1", Description: "Yet another yogurt. Pacman wrapper and AUR helper written in go.", Installed: true},
			},
		},
		{
			description: "empty",
			output:      "",
			expect:      []Package{},
		},
		{
			description: "missing description",
			output:      "extra/fzf 0.54.3-1\nextra/fd 10.2.0-1\n    Simple, fast and user-friendly alternative to find\n",
			expect: []Package{
				{Provider: "pacman", Repository: "extra", Name: "fzf", Version: "0.54.3-1"},
				{Provider: "pacman", Repository: "extra", Name: "fd", Version: "10.2.0-1", Description: "Simple, fast and user-friendly alternative to find"},
			},
		},
		{
			description: "multi-line description",
			output:      "extra/fzf 0.54.3-1\n    Command-line\n    fuzzy finder\n",
			expect: []Package{
				{Provider: "pacman", Repository: "extra", Name: "fzf", Version: "0.54.3-1", Description: "Command-line fuzzy finder"},
			},
		},
		{
			description: "malformed lines are skipped with their descriptions",
			output:      ":: Synchronizing package databases...\n    orphan description\nextra/\nextra/fzf 0.54.3-1\n    Command-line fuzzy finder\nnoversion\n    dropped\n",
			expect: []Package{
				{Provider: "pacman", Repository: "extra", Name: "fzf", Version: "0.54.3-1", Description: "Command-line fuzzy finder"},
			},
		},
		{
			description: "no repository",
			output:      "fzf 0.54.3-1\n    Command-line fuzzy finder\n",
			expect: []Package{
				{Provider: "pacman", Name: "fzf", Version: "0.54.3-1", Description: "Command-line fuzzy finder"},
			},
		},
		{
			description: "invalid utf-8 is replaced",
			output:      "extra/fzf 0.54.3-1\n    caf\xe9 finder\n",
			expect: []Package{
				{Provider: "pacman", Repository: "extra", Name: "fzf", Version: "0.54.3-1", Description: "caf\uFFFD finder"},
			},
		},
	} {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expect, ParseListing([]byte(tc.output), "pacman"))
		})
	}
}

const pacmanDetails = `Repository      : extra
Name            : firefox
Version         : 130.0-1
Description     : Fast, Private & Safe Web Browser
Optional Deps   : hunspell-en_US: Spell checking, American English
                  libnotify: Notification integration
Download Size   : 70.12 MiB
Installed Size  : 250.46 MiB
Validated By    : Signature

`

func TestParseDetails(t *testing.T) {
	fields, err := ParseDetails([]byte(pacmanDetails))
	require.NoError(t, err)
	assert.Equal(t, []Field{
		{Key: "Repository", Value: "extra"},
		{Key: "Name", Value: "firefox"},
		{Key: "Version", Value: "130.0-1"},
		{Key: "Description", Value: "Fast, Private & Safe Web Browser"},
		{Key: "Optional Deps", Value: "hunspell-en_US: Spell checking, American English\nlibnotify: Notification integration"},
		{Key: "Download Size", Value: "70.12 MiB"},
		{Key: "Installed Size", Value: "250.46 MiB"},
		{Key: "Validated By", Value: "Signature"},
	}, fields)
}

func TestParseDetailsEmptyValues(t *testing.T) {
	fields, err := ParseDetails([]byte("Groups          : \nConflicts With  : None\n"))
	require.NoError(t, err)
	assert.Equal(t, []Field{
		{Key: "Groups", Value: ""},
		{Key: "Conflicts With", Value: "None"},
	}, fields)
}

func TestParseDetailsNone(t *testing.T) {
	for _, output := range []string{"", "\n\n", "error: package 'nope' was not found\n", "    orphan continuation\n"} {
		_, err := ParseDetails([]byte(output))
		assert.Equal(t, ErrNoDetails, err, "output: %q", output)
	}
}

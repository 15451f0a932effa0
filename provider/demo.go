package provider

// Demo returns a Static provider with a small snapshot of Arch Linux packages
func Demo() *Static {
	return NewStatic(DemoName, demoPackages, demoDetails...)
}

var demoPackages = []Package{
	{Repository: "extra", Name: "firefox", Version: "130.0-1", Description: "Fast, Private & Safe Web Browser", Installed: true},
	{Repository: "extra", Name: "firefox-developer-edition", Version: "131.0b4-1", Description: "Fast, Private & Safe Web Browser (developer edition)"},
	{Repository: "extra", Name: "firefox-ublock-origin", Version: "1.59.0-1", Description: "Efficient blocker add-on for various browsers"},
	{Repository: "extra", Name: "foxtrotgps", Version: "1.2.2-8", Description: "GTK+ mapping and GPS application"},
	{Repository: "extra", Name: "fox", Version: "1.6.57-2", Description: "Free Objects for X: GUI Toolkit for C++"},
	{Repository: "extra", Name: "vim", Version: "9.1.0707-1", Description: "Vi Improved, a highly configurable, improved version of the vi text editor", Installed: true},
	{Repository: "extra", Name: "gvim", Version: "9.1.0707-1", Description: "Vi Improved, a highly configurable, improved version of the vi text editor (with advanced features, such as a GUI)"},
	{Repository: "extra", Name: "neovim", Version: "0.10.1-3", Description: "Fork of Vim aiming to improve user experience, plugins, and GUIs"},
	{Repository: "extra", Name: "vim-airline", Version: "0.11-6", Description: "Lean & mean status/tabline for vim that's light as air"},
	{Repository: "extra", Name: "python-pynvim", Version: "0.5.0-3", Description: "Python client for Neovim"},
	{Repository: "core", Name: "git", Version: "2.46.0-1", Description: "the fast distributed version control system", Installed: true},
	{Repository: "extra", Name: "git-lfs", Version: "3.5.1-1", Description: "Git extension for versioning large files"},
	{Repository: "extra", Name: "github-cli", Version: "2.55.0-1", Description: "The GitHub CLI"},
	{Repository: "extra", Name: "lazygit", Version: "0.44.0-1", Description: "Simple terminal UI for git commands"},
	{Repository: "extra", Name: "tig", Version: "2.5.10-1", Description: "Text-mode interface for Git"},
	{Repository: "core", Name: "linux", Version: "6.10.7.arch1-1", Description: "The Linux kernel and modules", Installed: true},
	{Repository: "core", Name: "linux-lts", Version: "6.6.48-1", Description: "The LTS Linux kernel and modules"},
	{Repository: "core", Name: "linux-firmware", Version: "20240809.59460076-1", Description: "Firmware files for Linux", Installed: true},
	{Repository: "core", Name: "lib32-glibc", Version: "2.40+r16+gaa533d58ff-2", Description: "GNU C Library (32-bit)"},
	{Repository: "core", Name: "glibc", Version: "2.40+r16+gaa533d58ff-2", Description: "GNU C Library", Installed: true},
	{Repository: "extra", Name: "python", Version: "3.12.5-1", Description: "The Python programming language", Installed: true},
	{Repository: "extra", Name: "python-pip", Version: "24.2-1", Description: "The PyPA recommended tool for installing Python packages"},
	{Repository: "extra", Name: "python-requests", Version: "2.32.3-1", Description: "Python HTTP for Humans"},
	{Repository: "extra", Name: "go", Version: "2:1.23.0-1", Description: "Core compiler tools for the Go programming language"},
	{Repository: "extra", Name: "gopls", Version: "0.16.1-1", Description: "Language server for Go programming language"},
	{Repository: "extra", Name: "htop", Version: "3.3.0-3", Description: "Interactive process viewer"},
	{Repository: "extra", Name: "btop", Version: "1.3.2-1", Description: "A monitor of system resources, bpytop ported to C++"},
	{Repository: "extra", Name: "ripgrep", Version: "14.1.0-1", Description: "A search tool that combines the usability of ag with the raw speed of grep"},
	{Repository: "extra", Name: "fzf", Version: "0.54.3-1", Description: "Command-line fuzzy finder"},
	{Repository: "extra", Name: "docker", Version: "1:27.2.0-1", Description: "Pack, ship and run any application as a lightweight container"},
	{Repository: "extra", Name: "docker-compose", Version: "2.29.2-1", Description: "Fast, isolated development environments using Docker"},
}

var demoDetails = []Details{
	{
		Name: "firefox",
		Fields: []Field{
			{Key: "Repository", Value: "extra"},
			{Key: "Name", Value: "firefox"},
			{Key: "Version", Value: "130.0-1"},
			{Key: "Description", Value: "Fast, Private & Safe Web Browser"},
			{Key: "URL", Value: "https://www.mozilla.org/firefox/"},
			{Key: "Licenses", Value: "MPL-2.0"},
			{Key: "Depends On", Value: "dbus  ffmpeg  gtk3  libpulse  libxt  mime-types  nss  ttf-font"},
			{Key: "Optional Deps", Value: "hunspell-en_US: Spell checking, American English\nlibnotify: Notification integration"},
			{Key: "Download Size", Value: "70.12 MiB"},
			{Key: "Installed Size", Value: "250.46 MiB"},
		},
	},
	{
		Name: "vim",
		Fields: []Field{
			{Key: "Repository", Value: "extra"},
			{Key: "Name", Value: "vim"},
			{Key: "Version", Value: "9.1.0707-1"},
			{Key: "Description", Value: "Vi Improved, a highly configurable, improved version of the vi text editor"},
			{Key: "Download Size", Value: "2.04 MiB"},
			{Key: "Installed Size", Value: "4.44 MiB"},
		},
	},
	{
		Name: "fzf",
		Fields: []Field{
			{Key: "Repository", Value: "extra"},
			{Key: "Name", Value: "fzf"},
			{Key: "Version", Value: "0.54.3-1"},
			{Key: "Description", Value: "Command-line fuzzy finder"},
			{Key: "Download Size", Value: "1.46 MiB"},
			{Key: "Installed Size", Value: "3.87 MiB"},
		},
	},
}

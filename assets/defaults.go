package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultAllowListYAML contains the embedded default allow-list rules.
//
//go:embed defaults/allowlist.yaml
var DefaultAllowListYAML []byte

// DefaultFilesystemYAML contains the embedded mock filesystem fixture.
//
//go:embed defaults/filesystem.yaml
var DefaultFilesystemYAML []byte

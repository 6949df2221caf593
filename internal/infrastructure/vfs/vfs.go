// Package vfs provides the read-only mock filesystem the terminal lists.
// The tree is scenery: no command ever mutates it.
package vfs

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/pamash/assets"
)

// NodeType distinguishes directories from files.
type NodeType string

const (
	NodeDir  NodeType = "dir"
	NodeFile NodeType = "file"
)

// Node is one entry of the mock tree.
type Node struct {
	Type     NodeType         `yaml:"type"`
	Content  string           `yaml:"content,omitempty"`
	Children map[string]*Node `yaml:"children,omitempty"`
}

// Tree is the mock filesystem rooted at "~".
type Tree struct {
	root *Node
}

type fixture struct {
	Root *Node `yaml:"root"`
}

// Load parses a YAML fixture into a tree.
func Load(data []byte) (*Tree, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse filesystem fixture: %w", err)
	}
	if f.Root == nil {
		return nil, fmt.Errorf("filesystem fixture has no root")
	}
	return &Tree{root: f.Root}, nil
}

// Default loads the embedded fixture tree.
func Default() (*Tree, error) {
	return Load(assets.DefaultFilesystemYAML)
}

// List returns the entry names of the directory at the given path (relative
// to "~"), sorted. An empty path lists the root.
func (t *Tree) List(path []string) ([]string, error) {
	node, err := t.resolve(path)
	if err != nil {
		return nil, err
	}
	if node.Type != NodeDir {
		return nil, fmt.Errorf("not a directory")
	}
	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (t *Tree) resolve(path []string) (*Node, error) {
	node := t.root
	for _, part := range path {
		if part == "~" || part == "" {
			continue
		}
		child, ok := node.Children[part]
		if !ok {
			return nil, fmt.Errorf("no such file or directory: %s", part)
		}
		node = child
	}
	return node, nil
}

// Package project loads Royal project files: a whitespace-indented
// `key: value` layout where each two-space level of indentation nests a
// block one level deeper.
package project

import (
	"fmt"
	"os"
	"strings"

	semver "github.com/Masterminds/semver/v3"
)

// DefaultFilename is the project file the driver looks for when none is
// given explicitly.
const DefaultFilename = "royal.project"

// Dependency is one entry under the dependencies block. Version, when
// present, is a validated semver constraint such as ^1.2.0.
type Dependency struct {
	Name       string
	RawVersion string
	Version    *semver.Constraints
	Path       string
}

// Satisfies reports whether a concrete version satisfies the dependency's
// constraint. Dependencies without a version constraint accept everything.
func (d *Dependency) Satisfies(version string) (bool, error) {
	if d.Version == nil {
		return true, nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("invalid version %q for dependency %s: %w", version, d.Name, err)
	}

	return d.Version.Check(v), nil
}

// Project is a loaded project file.
type Project struct {
	Name         string
	SourcePaths  []string
	Dependencies []*Dependency
}

// node is one line of the indented layout with its nested children.
type node struct {
	key      string
	value    string
	children []*node
}

// Load reads and parses the project file at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	project, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return project, nil
}

// Parse parses project file text.
func Parse(data string) (*Project, error) {
	root := &node{}
	open := []*node{root}

	for lineNumber, raw := range strings.Split(data, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := 0
		for indent < len(line) && line[indent] == ' ' {
			indent++
		}

		level := indent/2 + 1
		if level > len(open) {
			return nil, fmt.Errorf("line %d: indentation is too deep", lineNumber+1)
		}

		entry := &node{}

		content := strings.TrimSpace(line)
		if key, value, found := strings.Cut(content, ":"); found {
			entry.key = strings.TrimSpace(key)
			entry.value = strings.TrimSpace(value)
		} else {
			entry.value = content
		}

		open = open[:level]
		parent := open[len(open)-1]
		parent.children = append(parent.children, entry)
		open = append(open, entry)
	}

	return interpret(root)
}

// interpret maps the parsed layout to a Project.
func interpret(root *node) (*Project, error) {
	project := &Project{}

	for _, entry := range root.children {
		switch entry.key {
		case "name":
			project.Name = entry.value
		case "sourcePaths":
			for _, child := range entry.children {
				path := child.value
				if path == "" {
					path = child.key
				}

				project.SourcePaths = append(project.SourcePaths, path)
			}
		case "dependencies":
			for _, child := range entry.children {
				dependency, err := interpretDependency(child)
				if err != nil {
					return nil, err
				}

				project.Dependencies = append(project.Dependencies, dependency)
			}
		}
	}

	if project.Name == "" {
		return nil, fmt.Errorf("missing name key")
	}

	return project, nil
}

// interpretDependency maps one dependency block, validating its version
// constraint.
func interpretDependency(entry *node) (*Dependency, error) {
	name := entry.key
	if name == "" {
		name = entry.value
	}

	dependency := &Dependency{Name: name}

	for _, child := range entry.children {
		switch child.key {
		case "version":
			constraint, err := semver.NewConstraint(child.value)
			if err != nil {
				return nil, fmt.Errorf("invalid version constraint %q for dependency %s: %w", child.value, name, err)
			}

			dependency.RawVersion = child.value
			dependency.Version = constraint
		case "path":
			dependency.Path = child.value
		}
	}

	return dependency, nil
}

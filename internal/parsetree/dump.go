package parsetree

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// treeDir is the directory token-tree dumps are written to, relative to the
// project root.
const treeDir = "parsertrees"

// MarshalJSON-friendly dumps are primarily a debugging aid for inspecting
// how source was grouped before parsing.

// JSON renders the tree as indented JSON.
func (n *Node) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token tree: %w", err)
	}

	return data, nil
}

// Dump writes the tree to <root>/parsertrees/parsertree_<module>.json,
// creating the directory when needed.
func Dump(root, module string, tree *Node) error {
	data, err := tree.JSON()
	if err != nil {
		return err
	}

	dir := filepath.Join(root, treeDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create dump directory: %w", err)
	}

	name := filepath.Join(dir, fmt.Sprintf("parsertree_%s.json", module))
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("failed to write token tree dump: %w", err)
	}

	return nil
}

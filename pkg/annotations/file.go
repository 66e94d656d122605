package annotations

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/eventmaster/pkg/constants"
	"github.com/agentstation/eventmaster/pkg/errors"
)

// NewFile opens a YAML-backed store at path, loading existing entries. A
// missing file is an empty store.
func NewFile(path string) (Store, error) {
	entries := make(map[string]Annotation)
	if err := readYAML(path, &entries); err != nil {
		return nil, err
	}

	return newStore(entries, func(all map[string]Annotation) error {
		return writeYAML(path, all)
	}), nil
}

// readYAML decodes path into v. A missing file leaves v untouched.
func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.WrapIO("read", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	return nil
}

// writeYAML replaces path with the YAML encoding of v via a temp file rename.
func writeYAML(path string, v any) error {
	data, err := yaml.MarshalWithOptions(v, yaml.Indent(2))
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

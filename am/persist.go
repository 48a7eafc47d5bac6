package am

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/teranos/stoich/errors"
)

// WriteStarter writes cfg as TOML to path. An existing file is kept as
// path.back1 first so a starter never destroys hand-edited settings.
func WriteStarter(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := createBackup(path); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, DefaultFilePermissions)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}

	if _, err := f.WriteString("# stoich configuration\n"); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to encode config to %s", path)
	}
	return f.Close()
}

// createBackup copies an existing config to .back1
func createBackup(configPath string) error {
	content, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(configPath+".back1", content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

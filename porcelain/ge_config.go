package porcelain

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os/user"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/ini.v1"

	"github.com/brickster241/mygit/plumbing"
	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/types"
)

// writeDefaultConfig seeds .mygit/config with the OS user as author.
func writeDefaultConfig(dot billy.Filesystem) error {
	name := constants.DefaultUserName
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	content := fmt.Sprintf(constants.Config, name, constants.DefaultUserEmail)
	if err := util.WriteFile(dot, constants.ConfigFile, []byte(content), constants.DefaultFilePerm); err != nil {
		return plumbing.IOError("write", constants.ConfigFile, err)
	}
	return nil
}

// loadConfig reads .mygit/config. A missing file reads as empty.
func (r *Repository) loadConfig() (*ini.File, error) {
	data, err := util.ReadFile(r.dot, constants.ConfigFile)
	if errors.Is(err, fs.ErrNotExist) {
		return ini.Empty(), nil
	}
	if err != nil {
		return nil, plumbing.IOError("read", constants.ConfigFile, err)
	}
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", constants.ConfigFile, plumbing.ErrCorruptRepository, err)
	}
	return cfg, nil
}

func splitConfigKey(key string) (string, string, error) {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid config key %q: %w", key, plumbing.ErrInvalidOperation)
	}
	return parts[0], parts[1], nil
}

// GetConfig returns the value of a "section.key" config entry.
func (r *Repository) GetConfig(key string) (string, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return "", err
	}
	section, name, err := splitConfigKey(key)
	if err != nil {
		return "", err
	}

	// Check val for specific key
	val := cfg.Section(section).Key(name).String()
	if val == "" {
		return "", fmt.Errorf("config key %s: %w", key, plumbing.ErrNotFound)
	}
	return val, nil
}

// SetConfig stores value under a "section.key" config entry.
func (r *Repository) SetConfig(key, value string) error {
	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}
	section, name, err := splitConfigKey(key)
	if err != nil {
		return err
	}
	cfg.Section(section).Key(name).SetValue(value)

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return plumbing.IOError("encode", constants.ConfigFile, err)
	}
	if err := util.WriteFile(r.dot, constants.ConfigFile, buf.Bytes(), constants.DefaultFilePerm); err != nil {
		return plumbing.IOError("write", constants.ConfigFile, err)
	}
	return nil
}

// authorInfo fetches the author from user.name and user.email, falling back to defaults for unset keys.
func (r *Repository) authorInfo() (types.Author, error) {
	if r.author != nil {
		return *r.author, nil
	}
	author := types.Author{Name: constants.DefaultUserName, Email: constants.DefaultUserEmail}

	cfg, err := r.loadConfig()
	if err != nil {
		return types.Author{}, err
	}
	if name := cfg.Section("user").Key("name").String(); name != "" {
		author.Name = name
	}
	if email := cfg.Section("user").Key("email").String(); email != "" {
		author.Email = email
	}
	return author, nil
}

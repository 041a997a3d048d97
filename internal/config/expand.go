package config

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Does not support ~username syntax - just ~ for the current user.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}

// ExpandPath expands ~ and the ${HOME} and ${USER} variables in a local
// path, so a shared config file can name a per-user database copy.
// Other ${...} references are left as written.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	result := ExpandTilde(path)
	if strings.Contains(result, "${HOME}") {
		if home, err := os.UserHomeDir(); err == nil {
			result = strings.ReplaceAll(result, "${HOME}", home)
		}
	}
	if strings.Contains(result, "${USER}") {
		result = strings.ReplaceAll(result, "${USER}", currentUser())
	}
	return result
}

func currentUser() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}

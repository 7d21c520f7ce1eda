// Package file provides file-based configuration loading.
// Configuration is stored as TOML in the ragtube config directory.
package file

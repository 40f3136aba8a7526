// Package seed embeds the built-in example items a new catalog starts with.
package seed

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed items.yaml
var content embed.FS

// Items returns the raw YAML document describing the initial items.
func Items() []byte {
	data, err := fs.ReadFile(content, "items.yaml")
	if err != nil {
		log.Fatalf("failed to read embedded seed items: %v", err)
	}
	return data
}

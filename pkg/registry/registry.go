// pkg/registry/registry.go

// Package registry reads the navigation fleet's activity catalog
// (configs/registry.json): one entry per worker task type with its
// schemas, error codes and owning workflows. The worker-manager logs
// it at startup, the gateway serves it on /api/activities and the
// cmd/tools generators consume it.
package registry

import (
	"encoding/json"
	"os"
)

// LoadRegistry reads and decodes the registry file at path.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

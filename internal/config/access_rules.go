package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AccessPolicy is the per-operation policy marking consumed by the auth
// guard.
type AccessPolicy string

const (
	// PolicyPublic allows the request without a token.
	PolicyPublic AccessPolicy = "public"
	// PolicyAuthenticated requires a valid token.
	PolicyAuthenticated AccessPolicy = "authenticated"
	// PolicyAdmin requires a valid token and the admin role.
	PolicyAdmin AccessPolicy = "admin"
	// PolicySelfOrAdmin requires a valid token; the ownership half of the
	// check is evaluated by the consuming handler.
	PolicySelfOrAdmin AccessPolicy = "self_or_admin"
)

// AccessRule binds one route to its policy marking.
type AccessRule struct {
	Method string       `yaml:"method"`
	Path   string       `yaml:"path"`
	Policy AccessPolicy `yaml:"policy"`
}

// LoadAccessRules reads the declared route policies from a YAML file.
func LoadAccessRules(path string) ([]AccessRule, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read access rules file: %w", err)
	}

	var doc struct {
		Rules []AccessRule `yaml:"accessRules"`
	}
	if err := yaml.Unmarshal(bytes, &doc); err != nil {
		return nil, fmt.Errorf("could not parse access rules yaml: %w", err)
	}

	for _, r := range doc.Rules {
		switch r.Policy {
		case PolicyPublic, PolicyAuthenticated, PolicyAdmin, PolicySelfOrAdmin:
		default:
			return nil, fmt.Errorf("unknown access policy %q for %s %s", r.Policy, r.Method, r.Path)
		}
	}
	return doc.Rules, nil
}

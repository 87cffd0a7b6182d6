package config

import (
	"fmt"
	"strings"

	"github.com/finsl/signbank-backend/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Media.VideoRoot == "" {
		return fmt.Errorf("media.video_root must not be empty")
	}

	roles, err := ParseDefinitionRoles(c.Dictionary.PublicDefinitionRolesRaw)
	if err != nil {
		return fmt.Errorf("dictionary.public_definition_roles: %w", err)
	}
	c.Dictionary.PublicDefinitionRoles = roles

	return nil
}

// ParseDefinitionRoles parses a comma-separated role allow-list (e.g.
// "note,phon"). An empty string returns a nil slice, which disables public
// definitions entirely. Unknown roles are rejected.
func ParseDefinitionRoles(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	roles := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !domain.DefinitionRole(p).IsValid() {
			return nil, fmt.Errorf("unknown role %q", p)
		}
		roles = append(roles, p)
	}

	return roles, nil
}

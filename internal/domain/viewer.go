package domain

import (
	"slices"

	"github.com/google/uuid"
)

// Gloss capability names. Issued as claims on access tokens; checked per
// request by services.
const (
	PermSearchGloss       = "dictionary.search_gloss"
	PermUpdateVideo       = "dictionary.update_video"
	PermExportCSV         = "dictionary.export_csv"
	PermPublish           = "dictionary.can_publish"
	PermDeleteUnpublished = "dictionary.can_delete_unpublished"
	PermDeletePublished   = "dictionary.can_delete_published"
	PermViewAdvanced      = "dictionary.view_advanced_properties"
	PermLockGloss         = "dictionary.lock_gloss"
)

// Viewer is the request-scoped identity. The zero value is an anonymous
// viewer with no capabilities.
type Viewer struct {
	UserID uuid.UUID
	Perms  []string
}

// Authenticated reports whether the viewer carries a verified identity.
func (v Viewer) Authenticated() bool {
	return v.UserID != uuid.Nil
}

// Can reports whether the viewer holds the named capability.
func (v Viewer) Can(perm string) bool {
	return slices.Contains(v.Perms, perm)
}

// Package access maps stored permission sets to coarse access profiles and
// gates which screens a user may reach.
package access

import "viacampo/models"

// Profile is the coarse role bucket derived from a permission set.
type Profile string

const (
	ProfileAdmin       Profile = "ADMIN"
	ProfileAll         Profile = "ALL"
	ProfileTrayHistory Profile = "TRAY_HISTORY"
	ProfileTray        Profile = "TRAY"
)

// Profiles lists the valid profiles, highest privilege first.
var Profiles = []Profile{ProfileAdmin, ProfileAll, ProfileTrayHistory, ProfileTray}

// ToProfile resolves a permission set to its profile. Highest-privilege
// match wins: admin > all > history > default tray.
func ToProfile(permissions []string) Profile {
	has := func(perm string) bool {
		for _, p := range permissions {
			if p == perm {
				return true
			}
		}
		return false
	}

	switch {
	case has(models.PermAdmin):
		return ProfileAdmin
	case has(models.PermAll):
		return ProfileAll
	case has(models.PermHistory):
		return ProfileTrayHistory
	default:
		return ProfileTray
	}
}

// FromProfile is the inverse mapping used when an admin edits a user through
// the profile selector. Editing is profile-granularity: each profile stores
// exactly one permission set.
func FromProfile(profile Profile) []string {
	switch profile {
	case ProfileAdmin:
		return []string{models.PermAdmin, models.PermAll}
	case ProfileAll:
		return []string{models.PermAll}
	case ProfileTrayHistory:
		return []string{models.PermTray, models.PermHistory}
	default:
		return []string{models.PermTray}
	}
}

// ValidProfile reports whether the given value names a known profile.
func ValidProfile(profile Profile) bool {
	for _, p := range Profiles {
		if p == profile {
			return true
		}
	}
	return false
}

// Can reports whether the user may reach the surface gated by the given
// capability. Inactive users can reach nothing. Denial is an expected state,
// not an error: callers render a "not permitted" message.
func Can(user models.AppUser, capability string) bool {
	if !user.Active {
		return false
	}
	if user.Has(models.PermAdmin) {
		return true
	}
	if capability == models.PermAdmin {
		return false
	}
	if user.Has(models.PermAll) {
		return true
	}
	return user.Has(capability)
}

package models

// Capability tags stored in an AppUser's permission set.
const (
	PermTray    = "tray"
	PermHistory = "history"
	PermAdmin   = "admin"
	PermAll     = "all"
)

// AppUser is one row of the admin user directory.
type AppUser struct {
	UID         string   `firestore:"-" json:"uid"`
	Email       string   `firestore:"email" json:"email"`
	Active      bool     `firestore:"active" json:"active"`
	Permissions []string `firestore:"permissions" json:"permissions"`
}

// Has reports whether the permission set contains the given tag.
func (u AppUser) Has(perm string) bool {
	for _, p := range u.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// Actor is the authenticated caller identity stamped onto writes.
type Actor struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Authenticated reports whether the actor carries a usable identity.
func (a Actor) Authenticated() bool {
	return a.UID != ""
}

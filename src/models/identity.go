package models

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role discriminates which account collection an identity belongs to.
type Role string

const (
	RoleSeeker    Role = "seeker"
	RoleRecruiter Role = "recruiter"
)

var ErrUnknownRole = errors.New("unknown role")

// Identity is an (id, role) pair. Seekers and recruiters live in separate
// collections, so a bare ObjectID is never enough to reference a person.
type Identity struct {
	ID   primitive.ObjectID `json:"id" bson:"id"`
	Role Role               `json:"role" bson:"role"`
}

// Key returns the registry key for this identity, e.g. "seeker_64ff...".
func (i Identity) Key() string {
	return string(i.Role) + "_" + i.ID.Hex()
}

// Validate rejects zero ids and roles outside the two known classes.
func (i Identity) Validate() error {
	if i.ID.IsZero() {
		return errors.New("identity id is required")
	}
	switch i.Role {
	case RoleSeeker, RoleRecruiter:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRole, i.Role)
	}
}

// Equal reports whether two identities reference the same person.
func (i Identity) Equal(other Identity) bool {
	return i.ID == other.ID && i.Role == other.Role
}

// CollectionForRole maps a role to its account collection. The switch is
// exhaustive: an unrecognized role is an error, never a fallthrough.
func CollectionForRole(role Role) (string, error) {
	switch role {
	case RoleSeeker:
		return "seekers", nil
	case RoleRecruiter:
		return "recruiters", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}

// ParseRole validates a role string from a request or token claim.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSeeker:
		return RoleSeeker, nil
	case RoleRecruiter:
		return RoleRecruiter, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Principal is the authenticated account attached to the request context by
// the auth middleware.
type Principal struct {
	Identity       Identity `json:"identity"`
	Name           string   `json:"name"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	ProfilePicture string   `json:"profilePicture"`
}

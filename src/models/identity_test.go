package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIdentityKey(t *testing.T) {
	id := primitive.NewObjectID()
	seeker := Identity{ID: id, Role: RoleSeeker}
	recruiter := Identity{ID: id, Role: RoleRecruiter}

	assert.Equal(t, "seeker_"+id.Hex(), seeker.Key())
	assert.Equal(t, "recruiter_"+id.Hex(), recruiter.Key())
	// Same ObjectID under different roles is a different person.
	assert.NotEqual(t, seeker.Key(), recruiter.Key())
	assert.False(t, seeker.Equal(recruiter))
}

func TestIdentityValidate(t *testing.T) {
	id := primitive.NewObjectID()

	assert.NoError(t, Identity{ID: id, Role: RoleSeeker}.Validate())
	assert.NoError(t, Identity{ID: id, Role: RoleRecruiter}.Validate())

	assert.Error(t, Identity{Role: RoleSeeker}.Validate())

	err := Identity{ID: id, Role: "admin"}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestCollectionForRole(t *testing.T) {
	col, err := CollectionForRole(RoleSeeker)
	require.NoError(t, err)
	assert.Equal(t, "seekers", col)

	col, err = CollectionForRole(RoleRecruiter)
	require.NoError(t, err)
	assert.Equal(t, "recruiters", col)

	_, err = CollectionForRole("moderator")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("seeker")
	require.NoError(t, err)
	assert.Equal(t, RoleSeeker, role)

	role, err = ParseRole("recruiter")
	require.NoError(t, err)
	assert.Equal(t, RoleRecruiter, role)

	for _, bad := range []string{"", "Seeker", "RECRUITER", "admin"} {
		_, err := ParseRole(bad)
		assert.ErrorIs(t, err, ErrUnknownRole, "role %q", bad)
	}
}

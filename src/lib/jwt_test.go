package lib

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/worklink-app/Backend-Work-Link/src/models"
)

func TestJWTRoundTrip(t *testing.T) {
	identity := models.Identity{ID: primitive.NewObjectID(), Role: models.RoleRecruiter}

	token, err := GenerateJWT(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)

	parsed, err := IdentityFromClaims(claims)
	require.NoError(t, err)
	assert.True(t, identity.Equal(parsed))
}

func TestVerifyJWTRejectsTampering(t *testing.T) {
	identity := models.Identity{ID: primitive.NewObjectID(), Role: models.RoleSeeker}
	token, err := GenerateJWT(identity)
	require.NoError(t, err)

	_, err = VerifyJWT(token + "x")
	assert.Error(t, err)

	_, err = VerifyJWT("not-a-token")
	assert.Error(t, err)
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	claims := jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"role":   "seeker",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = VerifyJWT(signed)
	assert.Error(t, err)
}

func TestIdentityFromClaimsRejectsBadClaims(t *testing.T) {
	cases := map[string]jwt.MapClaims{
		"missing userId": {"role": "seeker"},
		"missing role":   {"userId": primitive.NewObjectID().Hex()},
		"unknown role":   {"userId": primitive.NewObjectID().Hex(), "role": "admin"},
		"malformed id":   {"userId": "zzz", "role": "seeker"},
	}
	for name, claims := range cases {
		_, err := IdentityFromClaims(claims)
		assert.Error(t, err, name)
	}
}

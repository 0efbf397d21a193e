package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelfood/configs"
	"hotelfood/entity"
	"hotelfood/repository"
	"hotelfood/utils"
)

func newAuth(t *testing.T, f *fixture) *AuthService {
	t.Helper()
	return NewAuthService(repository.NewStaffRepository(f.db), f.carts, "test-secret", time.Hour)
}

func TestCustomerLoginIssuesSessionWithEmptyCart(t *testing.T) {
	f := newFixture(t)
	auth := newAuth(t, f)

	sess, err := auth.CustomerLogin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, sess.Role)
	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, 1, f.store.Len())

	claims, err := utils.ParseToken(sess.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, claims.Role)
	assert.Equal(t, sess.SessionID, claims.SessionID)

	other, err := auth.CustomerLogin(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, sess.SessionID, other.SessionID)
}

func TestStaffLogin(t *testing.T) {
	f := newFixture(t)
	auth := newAuth(t, f)
	_, err := configs.UpsertStaff(f.db, "chef", "s3cret", entity.RoleKitchen)
	require.NoError(t, err)

	sess, err := auth.StaffLogin(context.Background(), " chef ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleKitchen, sess.Role)

	claims, err := utils.ParseToken(sess.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleKitchen, claims.Role)
	assert.NotZero(t, claims.UserID)
	assert.Empty(t, claims.SessionID)

	_, err = auth.StaffLogin(context.Background(), "chef", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.StaffLogin(context.Background(), "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutDropsCart(t *testing.T) {
	f := newFixture(t)
	auth := newAuth(t, f)

	sess, err := auth.CustomerLogin(context.Background())
	require.NoError(t, err)
	require.NoError(t, auth.Logout(context.Background(), sess.SessionID))
	assert.Zero(t, f.store.Len())
}

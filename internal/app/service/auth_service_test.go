package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"algoclub/internal/common"
	"algoclub/internal/common/security"
	"algoclub/internal/domain/repository"
	"algoclub/internal/platform/config"
	"algoclub/internal/platform/docstore/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	identity *GoogleIdentity
	err      error
}

func (v *stubVerifier) Verify(ctx context.Context, rawToken string) (*GoogleIdentity, error) {
	return v.identity, v.err
}

func initTestJWT() {
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()
}

func TestLoginWithGoogleCreatesProfileAndSession(t *testing.T) {
	initTestJWT()
	ctx := context.Background()
	store := memstore.New()
	memberRepo := repository.NewMemberRepository(store, testLogger())

	// The registry already knows this member.
	_, err := store.Collection("signedUser").Add(ctx, map[string]interface{}{
		"boj_id": "alice123", "email": "alice@club.dev", "name": "Alice",
	})
	require.NoError(t, err)

	svc := NewAuthService(&stubVerifier{identity: &GoogleIdentity{
		Subject: "google-sub-1", Email: "alice@club.dev", Name: "Alice", PhotoURL: "http://p",
	}}, memberRepo)

	resp, err := svc.LoginWithGoogle(ctx, GoogleLoginRequest{IDToken: "raw"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.IsMember)
	require.NotNil(t, resp.Registry)
	assert.Equal(t, "alice123", resp.Registry.Handle)
	assert.Equal(t, "google-sub-1", resp.Member.ID)

	// The profile landed in the users collection.
	member, err := memberRepo.FindByID(ctx, "google-sub-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@club.dev", member.Email)
}

func TestLoginWithGoogleUnregisteredEmailStillLogsIn(t *testing.T) {
	initTestJWT()
	svc := NewAuthService(&stubVerifier{identity: &GoogleIdentity{
		Subject: "google-sub-2", Email: "guest@club.dev", Name: "Guest",
	}}, repository.NewMemberRepository(memstore.New(), testLogger()))

	resp, err := svc.LoginWithGoogle(context.Background(), GoogleLoginRequest{IDToken: "raw"})
	require.NoError(t, err)
	assert.False(t, resp.IsMember)
	assert.Nil(t, resp.Registry)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginWithGoogleRejectedToken(t *testing.T) {
	initTestJWT()
	svc := NewAuthService(&stubVerifier{err: common.ErrUnauthorized},
		repository.NewMemberRepository(memstore.New(), testLogger()))

	_, err := svc.LoginWithGoogle(context.Background(), GoogleLoginRequest{IDToken: "bad"})
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}

func TestLoginWithGoogleEmptyTokenIsBadRequest(t *testing.T) {
	initTestJWT()
	svc := NewAuthService(&stubVerifier{},
		repository.NewMemberRepository(memstore.New(), testLogger()))

	_, err := svc.LoginWithGoogle(context.Background(), GoogleLoginRequest{})
	assert.True(t, errors.Is(err, common.ErrBadRequest))
}

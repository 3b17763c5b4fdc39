package service

import (
	"context"
	"errors"
	"fmt"

	"algoclub/internal/common"
	"algoclub/internal/common/security"
	"algoclub/internal/domain/model"
	"algoclub/internal/domain/repository"

	"google.golang.org/api/idtoken"
)

// GoogleIdentity is the verified identity extracted from a Google ID token.
type GoogleIdentity struct {
	Subject  string
	Email    string
	Name     string
	PhotoURL string
}

// TokenVerifier validates a Google ID token and returns the identity it
// asserts. Production uses Google's certificates; tests inject a fake.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*GoogleIdentity, error)
}

type googleTokenVerifier struct {
	audience string
}

func NewGoogleTokenVerifier(audience string) TokenVerifier {
	return &googleTokenVerifier{audience: audience}
}

func (v *googleTokenVerifier) Verify(ctx context.Context, rawToken string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.audience)
	if err != nil {
		return nil, fmt.Errorf("google id token rejected: %w", common.ErrUnauthorized)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	return &GoogleIdentity{
		Subject:  payload.Subject,
		Email:    email,
		Name:     name,
		PhotoURL: picture,
	}, nil
}

type AuthService struct {
	verifier   TokenVerifier
	memberRepo repository.MemberRepository
}

func NewAuthService(verifier TokenVerifier, memberRepo repository.MemberRepository) *AuthService {
	return &AuthService{verifier: verifier, memberRepo: memberRepo}
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

type AuthResponse struct {
	Member   *model.Member         `json:"member"`
	Registry *model.RegistryRecord `json:"registry,omitempty"`
	IsMember bool                  `json:"isMember"`
	Token    string                `json:"token"`
}

// LoginWithGoogle exchanges a verified Google ID token for a session
// token, upserting the member profile on the way. A login is not refused
// just because the member registry has no row for the email; the response
// flags membership instead.
func (s *AuthService) LoginWithGoogle(ctx context.Context, req GoogleLoginRequest) (*AuthResponse, error) {
	if req.IDToken == "" {
		return nil, common.ErrBadRequest
	}

	identity, err := s.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, err
	}

	profile := model.Member{
		ID:       identity.Subject,
		Email:    identity.Email,
		Name:     identity.Name,
		PhotoURL: identity.PhotoURL,
	}
	if err := s.memberRepo.UpsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to upsert member profile: %w", err)
	}

	// Re-read so fields owned by the operators (the tracking-site handle)
	// come back with the profile.
	member, err := s.memberRepo.FindByID(ctx, identity.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load member profile: %w", err)
	}

	var registry *model.RegistryRecord
	if identity.Email != "" {
		registry, err = s.memberRepo.FindRegistryByEmail(ctx, identity.Email)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("failed to check member registry: %w", err)
		}
	}

	token, err := security.GenerateToken(member.ID, member.Name, member.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		Member:   member,
		Registry: registry,
		IsMember: registry != nil,
		Token:    token,
	}, nil
}

package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	authdom "courtbook/internal/domain/auth"
	"courtbook/internal/pkg/validator"
)

type jwtService interface {
	GenerateToken(email, role string) (string, error)
}

type Service struct {
	members *authdom.Repository
	jwt     jwtService
}

func NewService(members *authdom.Repository, jwt jwtService) *Service {
	return &Service{members: members, jwt: jwt}
}

// Register creates a member account and logs it in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*authdom.Member, string, error) {
	email := normalizeEmail(req.Email)

	taken, err := s.members.Exists(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	member := &authdom.Member{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Role:         authdom.RoleMember,
	}
	// Guards non-HTTP callers too; gin binding only covers handlers.
	if fields := validator.Validate(member); fields != nil {
		return nil, "", fmt.Errorf("invalid member: %v", fields)
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(member.Email, string(member.Role))
	if err != nil {
		return nil, "", err
	}
	return member, token, nil
}

// Login verifies credentials and issues an access token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*authdom.Member, string, error) {
	member, err := s.members.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(member.Email, string(member.Role))
	if err != nil {
		return nil, "", err
	}
	return member, token, nil
}

func (s *Service) CurrentMember(ctx context.Context, email string) (*authdom.Member, error) {
	return s.members.GetByEmail(ctx, email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetProfile(userID string) (*Profile, error)
}

type RepositoryAPI interface {
	GetByEmail(email string) (*Profile, error)
	GetByID(id string) (*Profile, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Profile is the authenticated identity plus its role/hospital/department
// binding. It is the only input the access-control engine sees about who
// is acting.
type Profile struct {
	ID           string             `json:"id" gorm:"primaryKey"`
	Email        string             `json:"email"`
	FullName     string             `json:"full_name"`
	PasswordHash string             `json:"-"`
	Role         accesscontrol.Role `json:"role"`
	HospitalID   *string            `json:"hospital_id,omitempty"`
	DepartmentID *string            `json:"department_id,omitempty"`
	IsActive     bool               `json:"is_active"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Actor projects the profile into the access-control view.
func (p *Profile) Actor() *accesscontrol.Actor {
	if p == nil {
		return nil
	}
	return &accesscontrol.Actor{
		ID:           p.ID,
		Role:         p.Role,
		HospitalID:   p.HospitalID,
		DepartmentID: p.DepartmentID,
		Active:       p.IsActive,
	}
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

type ctxKey string

const ContextProfileKey ctxKey = "profile"

func ProfileFromContext(ctx context.Context) (*Profile, bool) {
	p, ok := ctx.Value(ContextProfileKey).(*Profile)
	return p, ok
}

func ContextWithProfile(ctx context.Context, p *Profile) context.Context {
	return context.WithValue(ctx, ContextProfileKey, p)
}

// ActorFromContext is the shortcut handlers use to feed the authorizer.
func ActorFromContext(ctx context.Context) (*accesscontrol.Actor, bool) {
	p, ok := ProfileFromContext(ctx)
	if !ok || p == nil {
		return nil, false
	}
	return p.Actor(), true
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

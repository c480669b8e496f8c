package users

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/assignment"
	"github.com/docfolio/backend/internal/mail"
	"github.com/docfolio/backend/internal/models"
)

const maxPageSize = 50

// Service encapsulates user-related business logic: creation with folder
// scaffolding, role policy and paginated search.
type Service struct {
	repo     Repository
	resolver *assignment.Resolver
	mailer   mail.Mailer
	loginURL string
}

func NewService(repo Repository, resolver *assignment.Resolver, mailer mail.Mailer, loginURL string) *Service {
	return &Service{repo: repo, resolver: resolver, mailer: mailer, loginURL: loginURL}
}

// CreateInput carries the fields accepted when creating a user.
type CreateInput struct {
	FirstName     string            `json:"firstName" binding:"required"`
	SecondName    string            `json:"secondName"`
	Surname       string            `json:"surname" binding:"required"`
	SecondSurname string            `json:"secondSurname"`
	Email         string            `json:"email" binding:"required,email"`
	Birthdate     string            `json:"birthdate"`
	IDDocument    models.IDDocument `json:"idDocument" binding:"required"`
	Roles         []models.Role     `json:"roles"`
	Address       models.Address    `json:"address"`
	ProfileName   string            `json:"profileName" binding:"required"`
	HiringType    string            `json:"hiringType" binding:"required"`
	GroupName     string            `json:"groupName" binding:"required"`
	Services      []string          `json:"services" binding:"required"`
}

// Create builds a new user: checks the creator's role policy and uniqueness
// constraints, resolves the applicable requisites, scaffolds the folder,
// generates credentials and emails them. The credentials email is part of
// the operation; when it cannot be delivered the user is not persisted.
func (s *Service) Create(ctx context.Context, creator *models.User, in CreateInput) (*models.User, error) {
	for _, role := range in.Roles {
		if !role.Valid() {
			return nil, apperror.Validation("invalid role %q", role)
		}
	}
	if !CanCreate(creator.Roles, rolesWithCollaborator(in.Roles)) {
		return nil, apperror.Forbidden("insufficient permissions to create a user with the requested roles")
	}

	if existing, err := s.repo.FindByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperror.Validation("email %q is already in use", in.Email)
	}
	if existing, err := s.repo.FindByIDDocument(ctx, in.IDDocument.Type, in.IDDocument.Number); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperror.Validation("id document %s %s already exists", in.IDDocument.Type, in.IDDocument.Number)
	}

	requisites, err := s.resolver.Resolve(ctx, in.ProfileName, in.HiringType, in.GroupName, in.Services)
	if err != nil {
		return nil, err
	}

	password, err := generatePassword(12)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:     in.FirstName,
		SecondName:    in.SecondName,
		Surname:       in.Surname,
		SecondSurname: in.SecondSurname,
		Email:         in.Email,
		Birthdate:     in.Birthdate,
		IDDocument:    in.IDDocument,
		Roles:         rolesWithCollaborator(in.Roles),
		Account:       models.Account{PasswordHash: string(hash)},
		Address:       in.Address,
		IsActive:      true,
	}
	user.Folder = models.Folder{
		Name:        user.FullName(),
		ProfileName: in.ProfileName,
		HiringType:  in.HiringType,
		Services:    in.Services,
	}
	user.Folder.Scaffold(requisites)

	if err := s.sendCredentials(ctx, in.Email, password); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) sendCredentials(ctx context.Context, email, password string) error {
	html := fmt.Sprintf(`<p>Hello,</p>
<p>Your access credentials are:</p>
<p>Email: %s</p>
<p>Password: %s</p>
<p>You can sign in here:</p>
<a href="%s">Sign in</a>`, email, password, s.loginURL)

	return s.mailer.Send(ctx, mail.Message{
		To:      []string{email},
		Subject: "Access credentials",
		HTML:    html,
		Params:  map[string]string{"email": email},
	})
}

// GetByID returns a user or NotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("user with id %q not found", id)
	}
	return u, nil
}

// Roles returns the roles of a user, or NotFound.
func (s *Service) Roles(ctx context.Context, id string) ([]models.Role, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Roles, nil
}

// Find returns a page of users matching the filter.
func (s *Service) Find(ctx context.Context, page, size int, f Filter) ([]*models.User, int64, error) {
	if page < 1 {
		return nil, 0, apperror.Validation("page must be greater than or equal to 1")
	}
	if size != 0 && (size < 1 || size > maxPageSize) {
		return nil, 0, apperror.Validation("page size must be between 1 and %d", maxPageSize)
	}
	offset := (page - 1) * size
	return s.repo.FindAndCount(ctx, f, offset, size)
}

func rolesWithCollaborator(roles []models.Role) []models.Role {
	if models.HasRole(roles, models.RoleCollaborator) {
		return roles
	}
	return append(append([]models.Role{}, roles...), models.RoleCollaborator)
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+~"

func generatePassword(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordCharset[n.Int64()]
	}
	return string(out), nil
}

package services

import (
	"context"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vairleon/ai-web-core/domain"
)

var validate = validator.New()

// maxUserListSize caps GetAllUsers; there is no pagination beyond it.
const maxUserListSize = 1000

// BootstrapConfig carries the initial superuser credentials.
type BootstrapConfig struct {
	UserName string
	Email    string
	Password string
}

// AuthService implements domain.AuthService. It owns the identity
// lifecycle and is the only component that reads or writes password
// secrets.
type AuthService struct {
	userRepo      domain.UserRepository
	authorityRepo domain.AuthorityRepository
	passwordSvc   domain.PasswordService
	tokenSvc      domain.TokenService
	throttle      domain.RegistrationThrottle
	logger        *zap.Logger
}

// NewAuthService creates the auth service and runs the one-time superuser
// bootstrap: when the store is empty, an administrator account is
// synthesized from the configured initial credentials. Construction fails
// when the initial password is absent.
func NewAuthService(
	ctx context.Context,
	userRepo domain.UserRepository,
	authorityRepo domain.AuthorityRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	throttle domain.RegistrationThrottle,
	bootstrap BootstrapConfig,
	logger *zap.Logger,
) (*AuthService, error) {
	s := &AuthService{
		userRepo:      userRepo,
		authorityRepo: authorityRepo,
		passwordSvc:   passwordSvc,
		tokenSvc:      tokenSvc,
		throttle:      throttle,
		logger:        logger,
	}
	if err := s.bootstrapSuperUser(ctx, bootstrap); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AuthService) bootstrapSuperUser(ctx context.Context, bootstrap BootstrapConfig) error {
	if bootstrap.Password == "" {
		return fmt.Errorf("superuser initial password must be set")
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	s.logger.Debug("users registered in the service", zap.Int64("count", count))
	if count > 0 {
		return nil
	}

	s.logger.Info("no users in the system, creating the superuser",
		zap.String("userName", bootstrap.UserName))
	hash, err := s.passwordSvc.Hash(bootstrap.Password)
	if err != nil {
		return fmt.Errorf("failed to hash superuser password: %w", err)
	}
	super := &domain.User{
		Email:        bootstrap.Email,
		UserName:     bootstrap.UserName,
		FirstName:    "admin",
		LastName:     "admin",
		IsActive:     true,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, super); err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}
	return nil
}

// checkPasswordStrength enforces minimum length 8 and at least two of the
// four character classes: uppercase, lowercase, digit, symbol.
func checkPasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return domain.WeakPassword("password must be at least 8 characters long")
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	classes := 0
	for _, ok := range []bool{hasUpper, hasLower, hasDigit, hasSymbol} {
		if ok {
			classes++
		}
	}
	if classes < 2 {
		return domain.WeakPassword("password must mix at least two of: uppercase, lowercase, digits, symbols")
	}
	return nil
}

// Register implements domain.AuthService
func (s *AuthService) Register(ctx context.Context, params domain.RegisterParams, sourceAddr string) (*domain.User, error) {
	if err := s.throttle.TryRegister(sourceAddr); err != nil {
		return nil, err
	}

	if params.Email == "" {
		return nil, domain.InvalidInput("the email should not be empty")
	}
	if err := validate.Var(params.Email, "email"); err != nil {
		return nil, domain.InvalidInput("the email is not a valid email")
	}
	if params.UserName == "" {
		return nil, domain.InvalidInput("the userName should not be empty")
	}

	existing, err := s.userRepo.FindByEmail(ctx, params.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, domain.Conflict("the email is already registered")
	}

	existing, err = s.userRepo.FindByUserName(ctx, params.UserName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up userName: %w", err)
	}
	if existing != nil {
		return nil, domain.Conflict("the userName is already used")
	}

	if err := checkPasswordStrength(params.Password); err != nil {
		return nil, err
	}

	hash, err := s.passwordSvc.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        params.Email,
		UserName:     params.UserName,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Phone:        params.Phone,
		IsActive:     true,
		PasswordHash: hash,
		Role:         domain.RoleNormal,
		ExtraInfo:    params.ExtraInfo,
	}

	if err := s.userRepo.CreateWithAuthority(ctx, user, domain.DefaultFeatureKey); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		zap.Uint("id", user.ID),
		zap.String("userName", user.UserName))
	return user, nil
}

// Login implements domain.AuthService. Lookup resolves exactly one path by
// priority: email, then userName, then phone.
func (s *AuthService) Login(ctx context.Context, params domain.LoginParams) (string, error) {
	var (
		user *domain.User
		err  error
	)
	switch {
	case params.Email != "":
		user, err = s.userRepo.FindByEmail(ctx, params.Email)
	case params.UserName != "":
		user, err = s.userRepo.FindByUserName(ctx, params.UserName)
	case params.Phone != "":
		user, err = s.userRepo.FindByPhone(ctx, params.Phone)
	default:
		return "", domain.InvalidInput("params should have either email or userName")
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return "", domain.ErrUnauthorized
	}
	if !s.passwordSvc.Verify(user.PasswordHash, params.Password) {
		return "", domain.ErrUnauthorized
	}
	return s.tokenSvc.Generate(user)
}

// IssueToken implements domain.AuthService
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	return s.tokenSvc.Generate(user)
}

// GetByID implements domain.AuthService
func (s *AuthService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// GetByEmail implements domain.AuthService
func (s *AuthService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindByEmail(ctx, email)
}

// GetByUserName implements domain.AuthService
func (s *AuthService) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	return s.userRepo.FindByUserName(ctx, userName)
}

// GetByPhone implements domain.AuthService
func (s *AuthService) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return s.userRepo.FindByPhone(ctx, phone)
}

// UpdateUserRole implements domain.AuthService
func (s *AuthService) UpdateUserRole(ctx context.Context, id uint, role domain.Role) (*domain.User, error) {
	if !role.IsValid() {
		return nil, domain.InvalidInput("the role [%s] is invalid", role)
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domain.InvalidInput("the user id [%d] is invalid", id)
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return user, nil
}

// UpdateLastName implements domain.AuthService
func (s *AuthService) UpdateLastName(ctx context.Context, id uint, lastName string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domain.NotFound("user not found")
	}
	user.LastName = lastName
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update last name: %w", err)
	}
	return user, nil
}

// UpdateExtraInfo implements domain.AuthService. The patch is a shallow
// merge over the existing structured value, not a replacement.
func (s *AuthService) UpdateExtraInfo(ctx context.Context, id uint, patch domain.ExtraInfo) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domain.NotFound("user not found")
	}
	current := domain.ExtraInfo{}
	if user.ExtraInfo != nil {
		current = *user.ExtraInfo
	}
	merged := current.Merge(patch)
	user.ExtraInfo = &merged
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update extra info: %w", err)
	}
	return user, nil
}

// GrantAuthority implements domain.AuthService. Granting an already held
// feature key is a conflict.
func (s *AuthService) GrantAuthority(ctx context.Context, id uint, featureKey string) (*domain.User, error) {
	if featureKey == "" {
		return nil, domain.InvalidInput("the featureKey should not be empty")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domain.NotFound("user not found")
	}

	held, err := s.authorityRepo.ListByOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list authorities: %w", err)
	}
	for _, a := range held {
		if a.FeatureKey == featureKey {
			return nil, domain.Conflict("the authority is already granted")
		}
	}

	authority := &domain.Authority{FeatureKey: featureKey, OwnerID: id}
	if err := s.authorityRepo.Create(ctx, authority); err != nil {
		return nil, fmt.Errorf("failed to grant authority: %w", err)
	}
	user.Authorities = append(held, *authority)

	s.logger.Info("authority granted",
		zap.Uint("id", id),
		zap.String("featureKey", featureKey))
	return user, nil
}

// GetAllUsers implements domain.AuthService
func (s *AuthService) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListActive(ctx, maxUserListSize)
}

package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-model-api/infrastructure/repository/mocks"
	"github.com/vfg2006/business-model-api/internal/config"
	"github.com/vfg2006/business-model-api/internal/domain"
	errorcodes "github.com/vfg2006/business-model-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Segura#123"

func newTestService(repo *mocks.MockUserRepository) *Service {
	return &Service{
		userRepo: repo,
		cfg:      &config.Config{SecretKey: "test-secret"},
		now:      time.Now,
	}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func assertAuthCode(t *testing.T, err error, base error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, base)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, code, authErr.Code)
}

func TestLoginUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(t *testing.T, repo *mocks.MockUserRepository)
		wantErr  error
		wantCode string
	}{
		{
			name:     "login com sucesso normaliza o email",
			email:    "  Ana@Example.com ",
			password: testPassword,
			setup: func(t *testing.T, repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail("ana@example.com").
					Return(&domain.User{ID: 1, Email: "ana@example.com", Active: true, RoleID: RoleUser, PasswordHash: hashed(t, testPassword)}, nil)
			},
		},
		{
			name:     "dados ausentes",
			email:    "",
			password: testPassword,
			setup:    func(t *testing.T, repo *mocks.MockUserRepository) {},
			wantErr:  ErrMissingRequiredData,
			wantCode: errorcodes.ErrMissingRequiredData,
		},
		{
			name:     "usuário inexistente",
			email:    "ninguem@example.com",
			password: testPassword,
			setup: func(t *testing.T, repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any()).Return(nil, nil)
			},
			wantErr:  ErrUserNotFound,
			wantCode: errorcodes.ErrUserNotFound,
		},
		{
			name:     "usuário desativado",
			email:    "ana@example.com",
			password: testPassword,
			setup: func(t *testing.T, repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any()).
					Return(&domain.User{ID: 1, Active: false, PasswordHash: hashed(t, testPassword)}, nil)
			},
			wantErr:  ErrUserDisabled,
			wantCode: errorcodes.ErrUserDisabled,
		},
		{
			name:     "senha incorreta",
			email:    "ana@example.com",
			password: "errada",
			setup: func(t *testing.T, repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any()).
					Return(&domain.User{ID: 1, Active: true, PasswordHash: hashed(t, testPassword)}, nil)
			},
			wantErr:  ErrInvalidCredentials,
			wantCode: errorcodes.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockUserRepository(ctrl)
			tt.setup(t, repo)

			service := newTestService(repo)
			token, err := service.LoginUser(tt.email, tt.password)

			if tt.wantErr != nil {
				assertAuthCode(t, err, tt.wantErr, tt.wantCode)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, 1, claims.UserID)
			assert.Equal(t, RoleUser, claims.UserRoleID)
		})
	}
}

func TestValidateToken(t *testing.T) {
	user := &domain.User{ID: 5, Email: "ana@example.com", Active: true, RoleID: RoleAdmin}

	t.Run("token expirado", func(t *testing.T) {
		token, err := generateJWT(user, "test-secret", time.Now().Add(-time.Minute))
		require.NoError(t, err)

		_, err = newTestService(nil).ValidateToken(token)
		assertAuthCode(t, err, ErrExpiredToken, errorcodes.ErrExpiredToken)
	})

	t.Run("assinatura com outro segredo", func(t *testing.T) {
		token, err := generateJWT(user, "outro-segredo", time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = newTestService(nil).ValidateToken(token)
		assertAuthCode(t, err, ErrInvalidToken, errorcodes.ErrInvalidToken)
	})

	t.Run("token malformado", func(t *testing.T) {
		_, err := newTestService(nil).ValidateToken("abc.def")
		assertAuthCode(t, err, ErrInvalidToken, errorcodes.ErrInvalidToken)
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("cria usuário ativo com perfil padrão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().GetUserByEmail("ana@example.com").Return(nil, nil)
		repo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(user *domain.User) (*domain.User, error) {
			assert.True(t, user.Active)
			assert.Equal(t, RoleUser, user.RoleID)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(testPassword)))
			user.ID = 9
			return user, nil
		})

		created, err := newTestService(repo).CreateUser(&domain.User{
			Name: "Ana", Lastname: "Souza", Email: "Ana@Example.com", PasswordHash: testPassword,
		})

		require.NoError(t, err)
		assert.Equal(t, 9, created.ID)
		assert.Empty(t, created.PasswordHash)
	})

	t.Run("email já cadastrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().GetUserByEmail(gomock.Any()).Return(&domain.User{ID: 1}, nil)

		_, err := newTestService(repo).CreateUser(&domain.User{
			Name: "Ana", Lastname: "Souza", Email: "ana@example.com", PasswordHash: testPassword,
		})
		assertAuthCode(t, err, ErrUserAlreadyExists, errorcodes.ErrUserAlreadyExists)
	})

	t.Run("campos obrigatórios", func(t *testing.T) {
		_, err := newTestService(nil).CreateUser(&domain.User{Email: "ana@example.com"})
		assertAuthCode(t, err, ErrMissingRequiredData, errorcodes.ErrMissingRequiredData)
	})
}

func TestChangePassword(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		newPassword string
		wantErr     error
	}{
		{name: "altera a senha", current: testPassword, newPassword: "Outra#4567"},
		{name: "senha atual incorreta", current: "errada", newPassword: "Outra#4567", wantErr: ErrInvalidCredentials},
		{name: "nova senha igual à atual", current: testPassword, newPassword: testPassword, wantErr: ErrSamePassword},
		{name: "nova senha fraca", current: testPassword, newPassword: "fraca", wantErr: ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockUserRepository(ctrl)
			repo.EXPECT().GetUserByID(1).Return(&domain.User{ID: 1, PasswordHash: hashed(t, testPassword)}, nil)
			if tt.wantErr == nil {
				repo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(user *domain.User) error {
					assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.newPassword)))
					return nil
				})
			}

			err := newTestService(repo).ChangePassword(1, tt.current, tt.newPassword)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	service := newTestService(nil)

	assert.NoError(t, service.ValidatePasswordStrength("Segura#123"))
	assert.Error(t, service.ValidatePasswordStrength("Curta#1"))
	assert.Error(t, service.ValidatePasswordStrength("semmaiuscula#1"))
	assert.Error(t, service.ValidatePasswordStrength("SEMMINUSCULA#1"))
	assert.Error(t, service.ValidatePasswordStrength("SemNumero#"))
	assert.Error(t, service.ValidatePasswordStrength("SemEspecial1"))
}

func TestGenerateStrongPassword(t *testing.T) {
	t.Run("somente administradores", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().GetUserByID(2).Return(&domain.User{ID: 2, RoleID: RoleUser}, nil)

		_, err := newTestService(repo).GenerateStrongPassword(2, 3)
		assertAuthCode(t, err, ErrNoAdminPrivileges, errorcodes.ErrInsufficientPrivilege)
	})

	t.Run("gera senha forte para o usuário alvo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().GetUserByID(1).Return(&domain.User{ID: 1, RoleID: RoleAdmin}, nil)
		repo.EXPECT().GetUserByID(3).Return(&domain.User{ID: 3, RoleID: RoleUser}, nil)
		repo.EXPECT().UpdateUser(gomock.Any()).Return(nil)

		service := newTestService(repo)
		password, err := service.GenerateStrongPassword(1, 3)

		require.NoError(t, err)
		assert.Len(t, password, 12)
		assert.NoError(t, service.ValidatePasswordStrength(password))
	})
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		user     *domain.User
		expected bool
	}{
		{name: "admin ativo", user: &domain.User{RoleID: RoleAdmin, Active: true}, expected: true},
		{name: "admin desativado", user: &domain.User{RoleID: RoleAdmin, Active: false}},
		{name: "admin excluído", user: &domain.User{RoleID: RoleAdmin, Active: true, Deleted: true}},
		{name: "usuário comum", user: &domain.User{RoleID: RoleUser, Active: true}},
		{name: "inexistente", user: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockUserRepository(ctrl)
			repo.EXPECT().GetUserByID(7).Return(tt.user, nil)

			isAdmin, err := newTestService(repo).IsAdmin(7)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, isAdmin)
		})
	}
}

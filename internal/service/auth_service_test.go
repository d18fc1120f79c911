package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/obi/bookshelf-api/internal/domain"
	"github.com/obi/bookshelf-api/internal/repository/postgres"
	"github.com/obi/bookshelf-api/internal/service"
	"github.com/obi/bookshelf-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthService_SignUp(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(zap.NewNop(), repos.User, cfg)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     service.SignUpInput
		setup     func()
		wantErr   error
		checkUser bool
	}{
		{
			name: "successful sign-up",
			input: service.SignUpInput{
				Email:           "new@example.com",
				Username:        "newuser",
				Password:        "password123",
				ConfirmPassword: "password123",
			},
			checkUser: true,
		},
		{
			name: "duplicate email",
			input: service.SignUpInput{
				Email:           "taken@example.com",
				Username:        "someoneelse",
				Password:        "password123",
				ConfirmPassword: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@example.com").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrUserExists,
		},
		{
			name: "duplicate username",
			input: service.SignUpInput{
				Email:           "fresh@example.com",
				Username:        "takenname",
				Password:        "password123",
				ConfirmPassword: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("takenname").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrUserExists,
		},
		{
			name: "password confirmation mismatch",
			input: service.SignUpInput{
				Email:           "unique@example.com",
				Username:        "uniqueuser",
				Password:        "password123",
				ConfirmPassword: "password124",
			},
			wantErr: domain.ErrPasswordsDoNotMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			result, err := authService.SignUp(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.checkUser {
				assert.Equal(t, tt.input.Email, result.User.Email)
				assert.Equal(t, tt.input.Username, result.User.Username)
				assert.NotEmpty(t, result.Token)

				// The hash never leaves the service in serialized form.
				raw, err := json.Marshal(result.User)
				require.NoError(t, err)
				assert.NotContains(t, string(raw), "password")
				assert.NotContains(t, string(raw), result.User.PasswordHash)

				// A fresh sign-up must be able to sign in.
				signedIn, err := authService.SignIn(ctx, service.SignInInput{
					Email:    tt.input.Email,
					Password: tt.input.Password,
				})
				require.NoError(t, err)
				assert.Equal(t, result.User.ID, signedIn.User.ID)
			}
		})
	}
}

func TestAuthService_SignIn(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(zap.NewNop(), repos.User, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.SignInInput
		wantErr error
	}{
		{
			name: "successful sign-in",
			input: service.SignInInput{
				Email:    user.Email,
				Password: rawPassword,
			},
		},
		{
			name: "wrong password",
			input: service.SignInInput{
				Email:    user.Email,
				Password: "wrongpassword",
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "non-existent email",
			input: service.SignInInput{
				Email:    "nobody@example.com",
				Password: rawPassword,
			},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.SignIn(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotEmpty(t, result.Token)
		})
	}
}

func TestAuthService_SignIn_IndistinguishableFailures(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	authService := service.NewAuthService(zap.NewNop(), repos.User, testutil.TestConfig())
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("known@example.com").
		WithPassword("secret1").
		Build(t, testDB.DB)

	_, unknownErr := authService.SignIn(ctx, service.SignInInput{
		Email:    "unknown@example.com",
		Password: "secret1",
	})
	_, wrongPassErr := authService.SignIn(ctx, service.SignInInput{
		Email:    user.Email,
		Password: "wrong",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestAuthService_ValidateToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(zap.NewNop(), repos.User, cfg)
	ctx := context.Background()

	result, err := authService.SignUp(ctx, service.SignUpInput{
		Email:           "token@example.com",
		Username:        "tokenuser",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	require.NoError(t, err)

	t.Run("valid token resolves subject and email", func(t *testing.T) {
		claims, err := authService.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID.String(), (*claims)["sub"])
		assert.Equal(t, result.User.Email, (*claims)["email"])
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := authService.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expiredCfg := testutil.TestConfig()
		expiredCfg.JWTExpiry = -time.Minute
		expiredService := service.NewAuthService(zap.NewNop(), repos.User, expiredCfg)

		signedIn, err := expiredService.SignIn(ctx, service.SignInInput{
			Email:    "token@example.com",
			Password: "password123",
		})
		require.NoError(t, err)

		_, err = authService.ValidateToken(signedIn.Token)
		assert.Error(t, err)
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		otherCfg := testutil.TestConfig()
		otherCfg.JWTSecret = "a-completely-different-secret"
		otherService := service.NewAuthService(zap.NewNop(), repos.User, otherCfg)

		_, err := otherService.ValidateToken(result.Token)
		assert.Error(t, err)
	})
}

func TestAuthService_GetUserByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	authService := service.NewAuthService(zap.NewNop(), repos.User, testutil.TestConfig())
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	found, err := authService.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = authService.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/services"
)

// MockUserRepo is a testify mock of repositories.UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepo)
	service := services.NewAuthService(mockRepo, "test_jwt_secret")

	mockRepo.On("GetByEmail", "new@example.com").Return(nil, apperr.NotFound("user with email new@example.com not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, token, err := service.Register(services.RegisterInput{
		Email:    "new@example.com",
		Password: "secret123",
		Name:     "New User",
		Phone:    "5551234567",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "secret123", user.PasswordHash, "password must be stored hashed")
	assert.False(t, user.IsAdmin)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepo)
	service := services.NewAuthService(mockRepo, "test_jwt_secret")

	existing := &models.User{ID: "user-1", Email: "taken@example.com"}
	mockRepo.On("GetByEmail", "taken@example.com").Return(existing, nil).Once()

	_, _, err := service.Register(services.RegisterInput{
		Email:    "taken@example.com",
		Password: "secret123",
		Name:     "Someone",
		Phone:    "5551234567",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepo)
	service := services.NewAuthService(mockRepo, "test_jwt_secret")

	stored := &models.User{
		ID:           "user-1",
		Email:        "buyer@example.com",
		PasswordHash: hashOf(t, "secret123"),
	}

	// Correct credentials.
	mockRepo.On("GetByEmail", "buyer@example.com").Return(stored, nil).Once()
	user, token, err := service.Login("buyer@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-1", user.ID)

	// Wrong password.
	mockRepo.On("GetByEmail", "buyer@example.com").Return(stored, nil).Once()
	_, _, err = service.Login("buyer@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	// Unknown email yields the same error shape, never revealing
	// whether the account exists.
	mockRepo.On("GetByEmail", "ghost@example.com").Return(nil, apperr.NotFound("user with email ghost@example.com not found")).Once()
	_, _, err = service.Login("ghost@example.com", "whatever")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	mockRepo := new(MockUserRepo)
	service := services.NewAuthService(mockRepo, "test_jwt_secret")

	stored := &models.User{
		ID:           "user-1",
		Email:        "buyer@example.com",
		PasswordHash: hashOf(t, "secret123"),
	}

	mockRepo.On("GetByEmail", "buyer@example.com").Return(stored, nil).Once()
	_, token, err := service.Login("buyer@example.com", "secret123")
	require.NoError(t, err)

	mockRepo.On("GetByID", "user-1").Return(stored, nil).Once()
	user, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	// Garbage tokens are rejected without a repo lookup.
	_, err = service.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	// A token signed with a different secret is rejected.
	other := services.NewAuthService(mockRepo, "other_secret")
	_, err = other.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_AddAddressDefaultIsExclusive(t *testing.T) {
	mockRepo := new(MockUserRepo)
	service := services.NewAuthService(mockRepo, "test_jwt_secret")

	stored := &models.User{
		ID: "user-1",
		Addresses: []models.Address{
			{ID: "addr-1", FullName: "Home", IsDefault: true},
		},
	}
	mockRepo.On("GetByID", "user-1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	added, err := service.AddAddress("user-1", models.Address{
		FullName:    "Office",
		Phone:       "5559876543",
		AddressLine: "1 Work Plaza",
		City:        "Testville",
		State:       "TS",
		Pincode:     "654321",
		IsDefault:   true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.True(t, added.IsDefault)

	// The previous default lost its flag.
	assert.False(t, stored.Addresses[0].IsDefault)
	assert.Len(t, stored.Addresses, 2)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_DeleteAddress(t *testing.T) {
	mockRepo := new(MockUserRepo)
	service := services.NewAuthService(mockRepo, "test_jwt_secret")

	stored := &models.User{
		ID: "user-1",
		Addresses: []models.Address{
			{ID: "addr-1"},
			{ID: "addr-2"},
		},
	}
	mockRepo.On("GetByID", "user-1").Return(stored, nil).Twice()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	require.NoError(t, service.DeleteAddress("user-1", "addr-1"))
	assert.Len(t, stored.Addresses, 1)
	assert.Equal(t, "addr-2", stored.Addresses[0].ID)

	err := service.DeleteAddress("user-1", "addr-missing")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	mockRepo.AssertExpectations(t)
}

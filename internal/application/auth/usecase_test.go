package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-ledger/internal/application/auth"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/memory"
	"github.com/tu-usuario/stock-ledger/pkg/config"
	pkgjwt "github.com/tu-usuario/stock-ledger/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuthUC(t *testing.T) *auth.UseCase {
	t.Helper()
	store := memory.NewStore()
	return auth.NewUseCase(memory.NewUserRepository(store), config.JWTConfig{
		Secret:     testSecret,
		Expiration: 60,
		Issuer:     "stock-ledger-test",
	}, nil)
}

func TestRegister(t *testing.T) {
	uc := newAuthUC(t)

	user, err := uc.Register(dto.RegisterRequest{
		Email:    "maria@example.com",
		Password: "super-secreta",
		Name:     "María",
		Role:     entity.RoleBodeguero,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBodeguero, user.Role)
	assert.Equal(t, "active", user.Status)

	// Email duplicado.
	_, err = uc.Register(dto.RegisterRequest{
		Email: "maria@example.com", Password: "otra-clave-larga",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// Password corta.
	_, err = uc.Register(dto.RegisterRequest{Email: "p@example.com", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Rol desconocido.
	_, err = uc.Register(dto.RegisterRequest{
		Email: "q@example.com", Password: "super-secreta", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Rol vacío toma vendedor por defecto.
	user, err = uc.Register(dto.RegisterRequest{
		Email: "r@example.com", Password: "super-secreta",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, user.Role)
}

func TestLogin(t *testing.T) {
	uc := newAuthUC(t)
	_, err := uc.Register(dto.RegisterRequest{
		Email:    "maria@example.com",
		Password: "super-secreta",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "maria@example.com", Password: "super-secreta"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "maria@example.com", out.User.Email)

	// El token lleva userID y role.
	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)

	// Password incorrecta y email inexistente devuelven el mismo error.
	_, err = uc.Login(dto.LoginRequest{Email: "maria@example.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "super-secreta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/services"
)

func newUserService(t *testing.T) *services.UserService {
	db := setupDB(t)
	return services.NewUserService(db, services.NewAuditService(db))
}

func TestBootstrapCreatesFirstAdmin(t *testing.T) {
	svc := newUserService(t)

	u, err := svc.Bootstrap(" Ana  Souza ", " ANA@Example.com ", "segredo1")
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", u.Name)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.True(t, u.Active)
	assert.NotEqual(t, "segredo1", u.PasswordHash)

	// Once any user exists the bootstrap path closes for good.
	_, err = svc.Bootstrap("Intruso", "intruso@example.com", "segredo1")
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestBootstrapValidation(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Bootstrap("Ana", "sem-arroba", "segredo1")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.Bootstrap("Ana", "ana@example.com", "curta")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	// Five runes spread over seven bytes is still a short password.
	_, err = svc.Bootstrap("Ana", "ana@example.com", "ações")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Create("Beto", "beto@example.com", "segredo1", models.RoleOperator, operatorActor())
	assert.ErrorIs(t, err, services.ErrForbidden)

	u, err := svc.Create("Beto", "beto@example.com", "segredo1", models.RoleOperator, adminActor())
	require.NoError(t, err)
	assert.Equal(t, models.RoleOperator, u.Role)

	_, err = svc.Create("Clone", "BETO@example.com", "segredo1", models.RoleOperator, adminActor())
	ce := services.AsConflict(err)
	require.NotNil(t, ce)
	assert.Equal(t, "email", ce.Field)

	_, err = svc.Create("Dora", "dora@example.com", "segredo1", models.Role("gerente"), adminActor())
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestToggleUser(t *testing.T) {
	svc := newUserService(t)

	admin, err := svc.Bootstrap("Ana", "ana@example.com", "segredo1")
	require.NoError(t, err)
	actor := services.Actor{ID: admin.ID, Role: admin.Role}

	op, err := svc.Create("Beto", "beto@example.com", "segredo1", models.RoleOperator, actor)
	require.NoError(t, err)

	toggled, err := svc.Toggle(op.ID, actor)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	toggled, err = svc.Toggle(op.ID, actor)
	require.NoError(t, err)
	assert.True(t, toggled.Active)

	_, err = svc.Toggle(admin.ID, actor)
	assert.ErrorIs(t, err, services.ErrSelfDeactivation)

	_, err = svc.Toggle(op.ID, services.Actor{ID: op.ID, Role: models.RoleOperator})
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestAuthenticateNeverLeaksWhichPartFailed(t *testing.T) {
	svc := newUserService(t)

	u, err := svc.Bootstrap("Ana", "ana@example.com", "segredo1")
	require.NoError(t, err)

	got, err := svc.Authenticate("  ANA@example.com ", "segredo1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, wrongPass := svc.Authenticate("ana@example.com", "errada")
	_, unknown := svc.Authenticate("ninguem@example.com", "segredo1")
	assert.ErrorIs(t, wrongPass, services.ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPass, unknown)

	// Deactivated accounts fail the same way.
	op, err := svc.Create("Beto", "beto@example.com", "segredo1", models.RoleOperator, services.Actor{ID: u.ID, Role: u.Role})
	require.NoError(t, err)
	_, err = svc.Toggle(op.ID, services.Actor{ID: u.ID, Role: u.Role})
	require.NoError(t, err)
	_, err = svc.Authenticate("beto@example.com", "segredo1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUserListRequiresAdmin(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.List(operatorActor())
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = svc.Bootstrap("Ana", "ana@example.com", "segredo1")
	require.NoError(t, err)

	users, err := svc.List(adminActor())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/erp-admin/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestInspect_LeeClaimsSinSecreto(t *testing.T) {
	personID := uint(7)
	tok, err := pkgjwt.Generate(testSecret, 3, "lihua", pkgjwt.RoleManager, &personID, time.Hour)
	require.NoError(t, err)

	claims, err := pkgjwt.Inspect(tok)
	require.NoError(t, err)

	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, "lihua", claims.Username)
	assert.Equal(t, pkgjwt.RoleManager, claims.Role)
	require.NotNil(t, claims.PersonID)
	assert.Equal(t, uint(7), *claims.PersonID)
	assert.False(t, claims.Expired(time.Now()))
}

func TestInspect_TokenExpiradoSeDecodifica(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "admin", pkgjwt.RoleSuperAdmin, nil, -time.Minute)
	require.NoError(t, err)

	claims, err := pkgjwt.Inspect(tok)
	require.NoError(t, err, "la inspección no valida expiración")
	assert.True(t, claims.Expired(time.Now()))
}

func TestInspect_TokenMalFormado(t *testing.T) {
	_, err := pkgjwt.Inspect("token.invalido.aqui")
	assert.ErrorIs(t, err, pkgjwt.ErrMalformed)
}

func TestParse_VerificaFirma(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "admin", pkgjwt.RoleSuperAdmin, nil, time.Hour)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, pkgjwt.RoleSuperAdmin, claims.Role)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestClaims_SinExpiracionNuncaExpira(t *testing.T) {
	c := &pkgjwt.Claims{}
	assert.False(t, c.Expired(time.Now().Add(100*365*24*time.Hour)))
}

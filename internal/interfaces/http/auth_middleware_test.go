package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain/prospect"
	apphttp "github.com/salesdeskhq/crm-prospects-api/internal/interfaces/http"
	pkgjwt "github.com/salesdeskhq/crm-prospects-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "crm-prospects-test"
	testExpMin    = 60
)

// buildTestApp construit une application Fiber minimale avec :
//   - AuthMiddleware pour parser le JWT et charger les locals
//   - RequirePermission pour autoriser l'accès via la table de permissions
//   - Un handler factice qui répond 200 si les middlewares passent
func buildTestApp(action string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(action),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole génère un JWT avec le rôle indiqué.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "un token JWT valide doit pouvoir être généré")
	return "Bearer " + tok
}

// doRequest lance une requête GET /protected et retourne la réponse.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

// L'admin a la permission de gestion des utilisateurs → HTTP 200.
func TestRequirePermission_AdminAccedeGestionUtilisateurs(t *testing.T) {
	app := buildTestApp(prospect.ActionUsersManage)
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin doit accéder à la gestion des utilisateurs")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

// Un commercial peut traiter ses prospects → HTTP 200.
func TestRequirePermission_SalesPeutTraiter(t *testing.T) {
	app := buildTestApp(prospect.ActionTraiter)
	resp := doRequest(t, app, tokenForRole(t, "sales"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Un commercial ne peut pas valider (réservé admin/manager) → HTTP 403.
func TestRequirePermission_SalesBloqueSurValidation(t *testing.T) {
	app := buildTestApp(prospect.ActionValider)
	resp := doRequest(t, app, tokenForRole(t, "sales"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"sales ne doit pas pouvoir valider")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Un SDR ne peut pas importer → HTTP 403.
func TestRequirePermission_SDRBloqueSurImport(t *testing.T) {
	app := buildTestApp(prospect.ActionProspectsImport)
	resp := doRequest(t, app, tokenForRole(t, "sdr"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Action inconnue = refus, même pour un admin.
func TestRequirePermission_ActionInconnueRefusee(t *testing.T) {
	app := buildTestApp("inexistante:action")
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Sans en-tête Authorization → HTTP 401.
func TestAuthMiddleware_SansAuthHeader_Retourne401(t *testing.T) {
	app := buildTestApp(prospect.ActionProspectsView)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token invalide / malformé → HTTP 401.
func TestAuthMiddleware_TokenInvalide_Retourne401(t *testing.T) {
	app := buildTestApp(prospect.ActionProspectsView)
	resp := doRequest(t, app, "Bearer token.invalide.ici")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extraction des claims
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraitLesClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "manager"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "manager", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests pkg jwt — intégrité generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateEtParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "sdr", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "sdr", role)
}

func TestJWT_TokenExpire_RetourneErreur(t *testing.T) {
	// Expiration -1 minute : déjà expiré
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "un token expiré doit retourner une erreur")
}

func TestJWT_MauvaisSecret_RetourneErreur(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("un-autre-secret-completement-different", tok)
	assert.Error(t, err, "un mauvais secret doit invalider le token")
}

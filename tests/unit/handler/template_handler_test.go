package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"obrapass/internal/domain"
	"obrapass/internal/handler"
	"obrapass/internal/mapping"
	"obrapass/internal/service"
	"obrapass/mocks"
)

func templateRouter(tenantID, userID uuid.UUID) (*gin.Engine, *mocks.MockTemplateService) {
	tplSvc := new(mocks.MockTemplateService)
	h := handler.NewTemplateHandler(tplSvc)

	r := gin.New()
	grp := r.Group("/api/v1", authCtx(tenantID, userID, domain.RoleAdmin))
	grp.POST("/templates", h.Create)
	grp.POST("/templates/dry-run", h.DryRun)
	grp.GET("/templates/:platform", h.GetLatest)
	grp.GET("/templates/:platform/versions", h.ListVersions)
	grp.GET("/templates/:platform/versions/:version", h.GetVersion)
	return r, tplSvc
}

func TestTemplateHandler_DryRun_ReturnsPayload(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	router, tplSvc := templateRouter(tenantID, userID)

	tplSvc.On("DryRun", mock.Anything, tenantID, mock.AnythingOfType("service.DryRunTemplateInput")).
		Return(&service.DryRunResult{
			Payload:     map[string]interface{}{"company": map[string]interface{}{"taxId": "B46123456"}},
			SchemaValid: true,
		}, nil)

	w := performJSON(t, router, http.MethodPost, "/api/v1/templates/dry-run", gin.H{
		"plataforma": "nalanda",
		"rules": []gin.H{
			{"from": "Company.cif", "to": "company.taxId", "transform": "upper"},
		},
		"entidades": gin.H{"Company": gin.H{"cif": "b46123456"}},
	})

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)

	var result service.DryRunResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.SchemaValid)
	company := result.Payload["company"].(map[string]interface{})
	assert.Equal(t, "B46123456", company["taxId"])
}

func TestTemplateHandler_DryRun_UnresolvedSource(t *testing.T) {
	tenantID := uuid.New()
	router, tplSvc := templateRouter(tenantID, uuid.New())

	tplSvc.On("DryRun", mock.Anything, tenantID, mock.Anything).
		Return(nil, &mapping.ResolutionError{Path: "Company.cif", Target: "company.taxId"})

	w := performJSON(t, router, http.MethodPost, "/api/v1/templates/dry-run", gin.H{
		"plataforma": "nalanda",
		"rules":      []gin.H{{"from": "Company.cif", "to": "company.taxId"}},
	})

	requireErrorCode(t, w, http.StatusUnprocessableEntity, "UNRESOLVED_SOURCE")
}

func TestTemplateHandler_Create_Success(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	router, tplSvc := templateRouter(tenantID, userID)

	tplSvc.On("Create", mock.Anything, tenantID, userID, mock.AnythingOfType("service.CreateTemplateInput")).
		Return(&domain.MappingTemplate{
			ID:       uuid.New(),
			TenantID: tenantID,
			Platform: domain.PlatformNalanda,
			Version:  4,
		}, nil)

	w := performJSON(t, router, http.MethodPost, "/api/v1/templates", gin.H{
		"plataforma": "nalanda",
		"rules": []gin.H{
			{"from": "empresa.cif", "to": "company.taxId", "transform": "upper"},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)

	var tpl domain.MappingTemplate
	require.NoError(t, json.Unmarshal(env.Data, &tpl))
	assert.Equal(t, 4, tpl.Version)
}

func TestTemplateHandler_Create_MalformedRule(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	router, tplSvc := templateRouter(tenantID, userID)

	tplSvc.On("Create", mock.Anything, tenantID, userID, mock.AnythingOfType("service.CreateTemplateInput")).
		Return(nil, &mapping.ConfigError{RuleIndex: 0, Detail: "from: empty path segment"})

	w := performJSON(t, router, http.MethodPost, "/api/v1/templates", gin.H{
		"plataforma": "nalanda",
		"rules": []gin.H{
			{"from": "empresa..cif", "to": "company.taxId"},
		},
	})

	requireErrorCode(t, w, http.StatusBadRequest, "INVALID_TEMPLATE")
}

func TestTemplateHandler_GetLatest_UnknownPlatform(t *testing.T) {
	router, tplSvc := templateRouter(uuid.New(), uuid.New())

	w := performJSON(t, router, http.MethodGet, "/api/v1/templates/sap", nil)

	requireErrorCode(t, w, http.StatusBadRequest, "UNKNOWN_PLATFORM")
	tplSvc.AssertNotCalled(t, "GetLatest", mock.Anything, mock.Anything, mock.Anything)
}

func TestTemplateHandler_GetVersion_InvalidVersion(t *testing.T) {
	router, tplSvc := templateRouter(uuid.New(), uuid.New())

	w := performJSON(t, router, http.MethodGet, "/api/v1/templates/nalanda/versions/zero", nil)

	requireErrorCode(t, w, http.StatusBadRequest, "INVALID_VERSION")
	tplSvc.AssertNotCalled(t, "GetVersion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTemplateHandler_GetVersion_NotFound(t *testing.T) {
	tenantID := uuid.New()
	router, tplSvc := templateRouter(tenantID, uuid.New())

	tplSvc.On("GetVersion", mock.Anything, tenantID, domain.PlatformNalanda, 7).
		Return(nil, domain.ErrTemplateNotFound)

	w := performJSON(t, router, http.MethodGet, "/api/v1/templates/nalanda/versions/7", nil)

	requireErrorCode(t, w, http.StatusNotFound, "TEMPLATE_NOT_FOUND")
}

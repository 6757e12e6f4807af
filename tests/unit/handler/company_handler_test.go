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
	"obrapass/mocks"
)

type companyRouterDeps struct {
	companies *mocks.MockCompanyService
	workers   *mocks.MockWorkerService
	machines  *mocks.MockMachineService
}

func companyRouter(tenantID, userID uuid.UUID, role domain.UserRole) (*gin.Engine, *companyRouterDeps) {
	deps := &companyRouterDeps{
		companies: new(mocks.MockCompanyService),
		workers:   new(mocks.MockWorkerService),
		machines:  new(mocks.MockMachineService),
	}
	h := handler.NewCompanyHandler(deps.companies, deps.workers, deps.machines)

	r := gin.New()
	grp := r.Group("/api/v1", authCtx(tenantID, userID, role))
	grp.POST("/companies", h.Create)
	grp.GET("/companies", h.List)
	grp.GET("/companies/:id", h.GetByID)
	grp.PUT("/companies/:id", h.Update)
	grp.DELETE("/companies/:id", h.Delete)
	return r, deps
}

func TestCompanyHandler_Create_Success(t *testing.T) {
	tenantID := uuid.New()
	router, deps := companyRouter(tenantID, uuid.New(), domain.RoleAdmin)

	deps.companies.On("Create", mock.Anything, tenantID, mock.AnythingOfType("service.CreateCompanyInput")).
		Return(&domain.Company{
			ID:       uuid.New(),
			TenantID: tenantID,
			Name:     "Encofrados Levante SL",
			TaxID:    "B46123456",
		}, nil)

	w := performJSON(t, router, http.MethodPost, "/api/v1/companies", gin.H{
		"name": "Encofrados Levante SL",
		"cif":  "B46123456",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	var company domain.Company
	require.NoError(t, json.Unmarshal(env.Data, &company))
	assert.Equal(t, "B46123456", company.TaxID)
}

func TestCompanyHandler_List_Paginated(t *testing.T) {
	tenantID := uuid.New()
	router, deps := companyRouter(tenantID, uuid.New(), domain.RoleMember)

	deps.companies.On("List", mock.Anything, tenantID, 20, 10).
		Return([]domain.Company{{Name: "Encofrados Levante SL"}}, 42, nil)

	w := performJSON(t, router, http.MethodGet, "/api/v1/companies?offset=20&limit=10", nil)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 42, env.Meta.Total)
	assert.Equal(t, 20, env.Meta.Offset)
	assert.Equal(t, 10, env.Meta.Limit)
}

func TestCompanyHandler_GetByID_NotFound(t *testing.T) {
	tenantID := uuid.New()
	router, deps := companyRouter(tenantID, uuid.New(), domain.RoleMember)

	companyID := uuid.New()
	deps.companies.On("GetByID", mock.Anything, tenantID, companyID).
		Return(nil, domain.ErrCompanyNotFound)

	w := performJSON(t, router, http.MethodGet, "/api/v1/companies/"+companyID.String(), nil)

	requireErrorCode(t, w, http.StatusNotFound, "COMPANY_NOT_FOUND")
}

func TestCompanyHandler_GetByID_MalformedID(t *testing.T) {
	router, deps := companyRouter(uuid.New(), uuid.New(), domain.RoleMember)

	w := performJSON(t, router, http.MethodGet, "/api/v1/companies/not-a-uuid", nil)

	requireErrorCode(t, w, http.StatusBadRequest, "INVALID_ID")
	deps.companies.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

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

func exportRouter(tenantID, userID uuid.UUID) (*gin.Engine, *mocks.MockExportService) {
	exportSvc := new(mocks.MockExportService)
	h := handler.NewExportHandler(exportSvc)

	r := gin.New()
	grp := r.Group("/api/v1", authCtx(tenantID, userID, domain.RoleMember))
	grp.POST("/exports", h.Request)
	grp.GET("/exports", h.List)
	grp.GET("/exports/:id", h.GetByID)
	return r, exportSvc
}

func TestExportHandler_Request_Accepted(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	router, exportSvc := exportRouter(tenantID, userID)

	siteID := uuid.New()
	exportSvc.On("Request", mock.Anything, tenantID, userID, domain.PlatformNalanda, siteID).
		Return(&domain.ExportJob{
			ID:              uuid.New(),
			SiteID:          siteID,
			Platform:        domain.PlatformNalanda,
			TemplateVersion: 3,
			Status:          domain.ExportStatusQueued,
		}, nil)

	w := performJSON(t, router, http.MethodPost, "/api/v1/exports", gin.H{
		"plataforma": "nalanda",
		"obra_id":    siteID.String(),
	})

	require.Equal(t, http.StatusAccepted, w.Code)
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	var job domain.ExportJob
	require.NoError(t, json.Unmarshal(env.Data, &job))
	assert.Equal(t, domain.ExportStatusQueued, job.Status)
	assert.Equal(t, 3, job.TemplateVersion)
}

func TestExportHandler_Request_UnknownPlatform(t *testing.T) {
	router, exportSvc := exportRouter(uuid.New(), uuid.New())

	w := performJSON(t, router, http.MethodPost, "/api/v1/exports", gin.H{
		"plataforma": "sap",
		"obra_id":    uuid.New().String(),
	})

	requireErrorCode(t, w, http.StatusBadRequest, "UNKNOWN_PLATFORM")
	exportSvc.AssertNotCalled(t, "Request",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExportHandler_Request_NoTemplate(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	router, exportSvc := exportRouter(tenantID, userID)

	siteID := uuid.New()
	exportSvc.On("Request", mock.Anything, tenantID, userID, domain.PlatformCTAIMA, siteID).
		Return(nil, domain.ErrTemplateNotFound)

	w := performJSON(t, router, http.MethodPost, "/api/v1/exports", gin.H{
		"plataforma": "ctaima",
		"obra_id":    siteID.String(),
	})

	requireErrorCode(t, w, http.StatusNotFound, "TEMPLATE_NOT_FOUND")
}

func TestExportHandler_GetByID_Success(t *testing.T) {
	tenantID := uuid.New()
	router, exportSvc := exportRouter(tenantID, uuid.New())

	jobID := uuid.New()
	exportSvc.On("GetByID", mock.Anything, tenantID, jobID).
		Return(&domain.ExportJob{
			ID:      jobID,
			Status:  domain.ExportStatusCompleted,
			Payload: json.RawMessage(`{"company":{"taxId":"B46123456"}}`),
		}, nil)

	w := performJSON(t, router, http.MethodGet, "/api/v1/exports/"+jobID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)

	var job domain.ExportJob
	require.NoError(t, json.Unmarshal(env.Data, &job))
	assert.Equal(t, domain.ExportStatusCompleted, job.Status)
	assert.NotEmpty(t, job.Payload)
}

func TestExportHandler_List_Paginated(t *testing.T) {
	tenantID := uuid.New()
	router, exportSvc := exportRouter(tenantID, uuid.New())

	exportSvc.On("List", mock.Anything, tenantID, 0, 20).
		Return([]domain.ExportJob{{ID: uuid.New()}}, 1, nil)

	w := performJSON(t, router, http.MethodGet, "/api/v1/exports", nil)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Total)
}

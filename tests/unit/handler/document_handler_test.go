package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"obrapass/internal/domain"
	"obrapass/internal/handler"
	"obrapass/internal/service"
	"obrapass/mocks"
)

func documentRouter(tenantID, userID uuid.UUID) (*gin.Engine, *mocks.MockDocumentService) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	r := gin.New()
	grp := r.Group("/api/v1", authCtx(tenantID, userID, domain.RoleMember))
	grp.POST("/documents", h.Upload)
	grp.GET("/documents", h.List)
	grp.GET("/documents/:id", h.GetByID)
	grp.POST("/documents/:id/classify", h.RetryClassification)
	grp.DELETE("/documents/:id", h.Delete)
	return r, docSvc
}

func multipartUpload(t *testing.T, fields map[string]string, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestDocumentHandler_Upload_Success(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	router, docSvc := documentRouter(tenantID, userID)

	workerID := uuid.New()
	docSvc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadDocumentInput) bool {
		return in.TenantID == tenantID &&
			in.UploadedBy == userID &&
			in.EntityType == domain.EntityWorker &&
			in.EntityID == workerID &&
			in.Category == "apto_medico" &&
			in.ExpiresAt != nil
	})).Return(&domain.ComplianceDocument{
		ID:       uuid.New(),
		FileName: "apto_medico.pdf",
		Status:   domain.ClassificationPending,
	}, nil)

	body, contentType := multipartUpload(t, map[string]string{
		"entidad_tipo":    "trabajador",
		"entidad_id":      workerID.String(),
		"categoria":       "apto_medico",
		"fecha_caducidad": "2027-03-15",
	}, "apto_medico.pdf", []byte("%PDF-1.4"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	var doc domain.ComplianceDocument
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.Equal(t, domain.ClassificationPending, doc.Status)
}

func TestDocumentHandler_Upload_MissingFile(t *testing.T) {
	router, docSvc := documentRouter(uuid.New(), uuid.New())

	body, contentType := multipartUpload(t, map[string]string{
		"entidad_tipo": "trabajador",
		"entidad_id":   uuid.New().String(),
	}, "", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	requireErrorCode(t, w, http.StatusBadRequest, "MISSING_FILE")
	docSvc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestDocumentHandler_Upload_InvalidEntityType(t *testing.T) {
	router, docSvc := documentRouter(uuid.New(), uuid.New())

	body, contentType := multipartUpload(t, map[string]string{
		"entidad_tipo": "vehiculo",
		"entidad_id":   uuid.New().String(),
	}, "apto.pdf", []byte("%PDF-1.4"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	requireErrorCode(t, w, http.StatusBadRequest, "INVALID_ENTITY_TYPE")
	docSvc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestDocumentHandler_Upload_BadExpiryDate(t *testing.T) {
	router, docSvc := documentRouter(uuid.New(), uuid.New())

	body, contentType := multipartUpload(t, map[string]string{
		"entidad_tipo":    "trabajador",
		"entidad_id":      uuid.New().String(),
		"fecha_caducidad": "15/03/2027",
	}, "apto.pdf", []byte("%PDF-1.4"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	requireErrorCode(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
	docSvc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestDocumentHandler_List_ByEntity(t *testing.T) {
	tenantID := uuid.New()
	router, docSvc := documentRouter(tenantID, uuid.New())

	workerID := uuid.New()
	docSvc.On("ListByEntity", mock.Anything, tenantID, domain.EntityWorker, workerID).
		Return([]domain.ComplianceDocument{{FileName: "apto.pdf"}}, nil)

	w := performJSON(t, router, http.MethodGet,
		"/api/v1/documents?entidad_tipo=trabajador&entidad_id="+workerID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	docSvc.AssertNotCalled(t, "ListByTenant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentHandler_GetByID_IncludesDownloadURL(t *testing.T) {
	tenantID := uuid.New()
	router, docSvc := documentRouter(tenantID, uuid.New())

	docID := uuid.New()
	docSvc.On("GetByID", mock.Anything, tenantID, docID).
		Return(&domain.ComplianceDocument{ID: docID, FileName: "apto.pdf"}, nil)
	docSvc.On("GetDownloadURL", mock.Anything, tenantID, docID).
		Return("https://s3.example.com/signed", nil)

	w := performJSON(t, router, http.MethodGet, "/api/v1/documents/"+docID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)

	var payload struct {
		Document    domain.ComplianceDocument `json:"document"`
		DownloadURL string                    `json:"download_url"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, docID, payload.Document.ID)
	assert.Equal(t, "https://s3.example.com/signed", payload.DownloadURL)
}

func TestDocumentHandler_RetryClassification_Accepted(t *testing.T) {
	tenantID := uuid.New()
	router, docSvc := documentRouter(tenantID, uuid.New())

	docID := uuid.New()
	docSvc.On("RetryClassification", mock.Anything, tenantID, docID).
		Return(&domain.ComplianceDocument{ID: docID, Status: domain.ClassificationPending}, nil)

	w := performJSON(t, router, http.MethodPost, "/api/v1/documents/"+docID.String()+"/classify", nil)

	require.Equal(t, http.StatusAccepted, w.Code)
}

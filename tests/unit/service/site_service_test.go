package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"obrapass/internal/domain"
	"obrapass/internal/service"
	"obrapass/mocks"
)

func newSiteService() (service.SiteService, *mocks.MockSiteRepo, *mocks.MockWorkerRepo, *mocks.MockMachineRepo) {
	siteRepo := new(mocks.MockSiteRepo)
	workerRepo := new(mocks.MockWorkerRepo)
	machineRepo := new(mocks.MockMachineRepo)
	return service.NewSiteService(siteRepo, workerRepo, machineRepo), siteRepo, workerRepo, machineRepo
}

func TestSiteService_Create_Success(t *testing.T) {
	svc, siteRepo, _, _ := newSiteService()

	tenantID := uuid.New()
	siteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Site")).Return(nil)

	site, err := svc.Create(context.Background(), tenantID, service.CreateSiteInput{
		CompanyID:   uuid.New(),
		Name:        "Obra Torre Este",
		Code:        "OBR-001",
		RiskProfile: domain.RiskHigh,
	})

	require.NoError(t, err)
	assert.Equal(t, tenantID, site.TenantID)
	assert.Equal(t, domain.RiskHigh, site.RiskProfile)
}

func TestSiteService_Create_InvalidRiskProfile(t *testing.T) {
	svc, siteRepo, _, _ := newSiteService()

	site, err := svc.Create(context.Background(), uuid.New(), service.CreateSiteInput{
		CompanyID:   uuid.New(),
		Name:        "Obra Torre Este",
		Code:        "OBR-001",
		RiskProfile: "extreme",
	})

	assert.Nil(t, site)
	assert.ErrorIs(t, err, domain.ErrInvalidRiskProfile)
	siteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSiteService_AssignWorker_Success(t *testing.T) {
	svc, siteRepo, workerRepo, _ := newSiteService()

	tenantID := uuid.New()
	siteID := uuid.New()
	workerID := uuid.New()

	siteRepo.On("GetByID", mock.Anything, tenantID, siteID).Return(&domain.Site{ID: siteID}, nil)
	workerRepo.On("GetByID", mock.Anything, tenantID, workerID).Return(&domain.Worker{ID: workerID}, nil)
	workerRepo.On("AssignToSite", mock.Anything, tenantID, workerID, siteID).Return(nil)

	err := svc.AssignWorker(context.Background(), tenantID, siteID, workerID)

	assert.NoError(t, err)
	workerRepo.AssertExpectations(t)
}

func TestSiteService_AssignWorker_SiteNotFound(t *testing.T) {
	svc, siteRepo, workerRepo, _ := newSiteService()

	tenantID := uuid.New()
	siteID := uuid.New()

	siteRepo.On("GetByID", mock.Anything, tenantID, siteID).Return(nil, domain.ErrSiteNotFound)

	err := svc.AssignWorker(context.Background(), tenantID, siteID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrSiteNotFound)
	workerRepo.AssertNotCalled(t, "AssignToSite", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSiteService_AssignWorker_WorkerNotFound(t *testing.T) {
	svc, siteRepo, workerRepo, _ := newSiteService()

	tenantID := uuid.New()
	siteID := uuid.New()
	workerID := uuid.New()

	siteRepo.On("GetByID", mock.Anything, tenantID, siteID).Return(&domain.Site{ID: siteID}, nil)
	workerRepo.On("GetByID", mock.Anything, tenantID, workerID).Return(nil, domain.ErrWorkerNotFound)

	err := svc.AssignWorker(context.Background(), tenantID, siteID, workerID)

	assert.ErrorIs(t, err, domain.ErrWorkerNotFound)
	workerRepo.AssertNotCalled(t, "AssignToSite", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSiteService_AssignWorker_Duplicate(t *testing.T) {
	svc, siteRepo, workerRepo, _ := newSiteService()

	tenantID := uuid.New()
	siteID := uuid.New()
	workerID := uuid.New()

	siteRepo.On("GetByID", mock.Anything, tenantID, siteID).Return(&domain.Site{ID: siteID}, nil)
	workerRepo.On("GetByID", mock.Anything, tenantID, workerID).Return(&domain.Worker{ID: workerID}, nil)
	workerRepo.On("AssignToSite", mock.Anything, tenantID, workerID, siteID).Return(domain.ErrDuplicateAssignment)

	err := svc.AssignWorker(context.Background(), tenantID, siteID, workerID)

	assert.ErrorIs(t, err, domain.ErrDuplicateAssignment)
}

func TestSiteService_AssignMachine_Success(t *testing.T) {
	svc, siteRepo, _, machineRepo := newSiteService()

	tenantID := uuid.New()
	siteID := uuid.New()
	machineID := uuid.New()

	siteRepo.On("GetByID", mock.Anything, tenantID, siteID).Return(&domain.Site{ID: siteID}, nil)
	machineRepo.On("GetByID", mock.Anything, tenantID, machineID).Return(&domain.Machine{ID: machineID}, nil)
	machineRepo.On("AssignToSite", mock.Anything, tenantID, machineID, siteID).Return(nil)

	err := svc.AssignMachine(context.Background(), tenantID, siteID, machineID)

	assert.NoError(t, err)
	machineRepo.AssertExpectations(t)
}

func TestSiteService_ListWorkers_SiteNotFound(t *testing.T) {
	svc, siteRepo, workerRepo, _ := newSiteService()

	tenantID := uuid.New()
	siteID := uuid.New()
	siteRepo.On("GetByID", mock.Anything, tenantID, siteID).Return(nil, domain.ErrSiteNotFound)

	workers, err := svc.ListWorkers(context.Background(), tenantID, siteID)

	assert.Nil(t, workers)
	assert.ErrorIs(t, err, domain.ErrSiteNotFound)
	workerRepo.AssertNotCalled(t, "ListBySite", mock.Anything, mock.Anything, mock.Anything)
}

func TestSiteService_ListWorkers_Success(t *testing.T) {
	svc, siteRepo, workerRepo, _ := newSiteService()

	tenantID := uuid.New()
	siteID := uuid.New()
	siteRepo.On("GetByID", mock.Anything, tenantID, siteID).Return(&domain.Site{ID: siteID}, nil)
	workerRepo.On("ListBySite", mock.Anything, tenantID, siteID).
		Return([]domain.Worker{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	workers, err := svc.ListWorkers(context.Background(), tenantID, siteID)

	require.NoError(t, err)
	assert.Len(t, workers, 2)
}

func TestSiteService_RemoveWorker(t *testing.T) {
	svc, _, workerRepo, _ := newSiteService()

	tenantID := uuid.New()
	siteID := uuid.New()
	workerID := uuid.New()
	workerRepo.On("RemoveFromSite", mock.Anything, tenantID, workerID, siteID).Return(nil)

	assert.NoError(t, svc.RemoveWorker(context.Background(), tenantID, siteID, workerID))
	workerRepo.AssertExpectations(t)
}

func TestSiteService_Update_RiskProfileValidated(t *testing.T) {
	svc, siteRepo, _, _ := newSiteService()

	tenantID := uuid.New()
	siteID := uuid.New()
	siteRepo.On("GetByID", mock.Anything, tenantID, siteID).
		Return(&domain.Site{ID: siteID, RiskProfile: domain.RiskMedium}, nil)

	bad := domain.RiskProfile("catastrophic")
	_, err := svc.Update(context.Background(), tenantID, siteID, service.UpdateSiteInput{RiskProfile: &bad})

	assert.ErrorIs(t, err, domain.ErrInvalidRiskProfile)
	siteRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

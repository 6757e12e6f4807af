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

func TestCompanyService_Create_Success(t *testing.T) {
	repo := new(mocks.MockCompanyRepo)
	svc := service.NewCompanyService(repo)

	tenantID := uuid.New()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Company")).Return(nil)

	company, err := svc.Create(context.Background(), tenantID, service.CreateCompanyInput{
		Name:         "Encofrados Levante SL",
		TaxID:        "B46123456",
		ContactEmail: "admin@encofrados-levante.es",
	})

	require.NoError(t, err)
	assert.Equal(t, tenantID, company.TenantID)
	assert.Equal(t, "B46123456", company.TaxID)
	repo.AssertExpectations(t)
}

func TestCompanyService_GetByID_NotFound(t *testing.T) {
	repo := new(mocks.MockCompanyRepo)
	svc := service.NewCompanyService(repo)

	tenantID := uuid.New()
	companyID := uuid.New()
	repo.On("GetByID", mock.Anything, tenantID, companyID).Return(nil, domain.ErrCompanyNotFound)

	company, err := svc.GetByID(context.Background(), tenantID, companyID)

	assert.Nil(t, company)
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestCompanyService_Update_PartialFields(t *testing.T) {
	repo := new(mocks.MockCompanyRepo)
	svc := service.NewCompanyService(repo)

	tenantID := uuid.New()
	companyID := uuid.New()
	repo.On("GetByID", mock.Anything, tenantID, companyID).Return(&domain.Company{
		ID:       companyID,
		TenantID: tenantID,
		Name:     "Encofrados Levante SL",
		TaxID:    "B46123456",
		Phone:    "+34 960 000 000",
	}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Company")).Return(nil)

	newPhone := "+34 960 111 222"
	company, err := svc.Update(context.Background(), tenantID, companyID, service.UpdateCompanyInput{
		Phone: &newPhone,
	})

	require.NoError(t, err)
	assert.Equal(t, "+34 960 111 222", company.Phone)
	assert.Equal(t, "B46123456", company.TaxID)
}

func TestCompanyService_List(t *testing.T) {
	repo := new(mocks.MockCompanyRepo)
	svc := service.NewCompanyService(repo)

	tenantID := uuid.New()
	repo.On("ListByTenant", mock.Anything, tenantID, 20, 10).
		Return([]domain.Company{{ID: uuid.New()}, {ID: uuid.New()}}, 42, nil)

	companies, total, err := svc.List(context.Background(), tenantID, 20, 10)

	assert.NoError(t, err)
	assert.Len(t, companies, 2)
	assert.Equal(t, 42, total)
}

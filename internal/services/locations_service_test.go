package services

import (
	"context"
	"errors"
	"testing"

	"storemap/internal/apperrors"
	"storemap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) List(ctx context.Context, filter models.LocationFilter) ([]*models.Location, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Location), args.Int(1), args.Error(2)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationRepository) Create(ctx context.Context, location *models.Location) (*models.Location, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationRepository) Update(ctx context.Context, id int64, fields *models.LocationUpdate) (*models.Location, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type LocationServiceTestSuite struct {
	suite.Suite
	repo    *MockLocationRepository
	service LocationService
	context context.Context
}

func (suite *LocationServiceTestSuite) SetupTest() {
	suite.repo = new(MockLocationRepository)
	suite.service = NewLocationService(suite.repo)
	suite.context = context.Background()
}

func TestLocationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LocationServiceTestSuite))
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }
func boolPtr(v bool) *bool        { return &v }

func validCreate() *models.LocationCreate {
	return &models.LocationCreate{
		Code:     "WH-1",
		Name:     "Main",
		Type:     "WAREHOUSE",
		Address:  "Dock road 1",
		Capacity: intPtr(100),
	}
}

func (suite *LocationServiceTestSuite) assertValidation(err error, message string) {
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), message, validationErr.Message)
}

// --- Create ---

func (suite *LocationServiceTestSuite) TestCreate_AppliesDefaults() {
	suite.repo.On("Create", suite.context, mock.MatchedBy(func(location *models.Location) bool {
		return location.UsedCapacity == 0 &&
			location.Status == models.StatusActive &&
			!location.TemperatureControlled
	})).Return(&models.Location{ID: 1, Code: "WH-1", Status: models.StatusActive}, nil)

	created, err := suite.service.Create(suite.context, validCreate())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), created.ID)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *LocationServiceTestSuite) TestCreate_RequiredFieldsInOrder() {
	cases := []struct {
		mutate  func(*models.LocationCreate)
		message string
	}{
		{func(f *models.LocationCreate) { f.Code = "" }, "Code is required"},
		{func(f *models.LocationCreate) { f.Name = "" }, "Name is required"},
		{func(f *models.LocationCreate) { f.Type = "" }, "Type is required"},
		{func(f *models.LocationCreate) { f.Address = "" }, "Address is required"},
		{func(f *models.LocationCreate) { f.Capacity = nil }, "Capacity is required"},
		{func(f *models.LocationCreate) { f.Capacity = intPtr(0) }, "Capacity must be greater than 0"},
	}

	for _, tc := range cases {
		fields := validCreate()
		tc.mutate(fields)
		_, err := suite.service.Create(suite.context, fields)
		suite.assertValidation(err, tc.message)
	}
	suite.repo.AssertNotCalled(suite.T(), "Create")
}

func (suite *LocationServiceTestSuite) TestCreate_CodeCheckedBeforeCapacity() {
	fields := validCreate()
	fields.Code = ""
	fields.Capacity = nil

	_, err := suite.service.Create(suite.context, fields)
	suite.assertValidation(err, "Code is required")
}

func (suite *LocationServiceTestSuite) TestCreate_UsedCapacityBounds() {
	fields := validCreate()
	fields.UsedCapacity = intPtr(-1)
	_, err := suite.service.Create(suite.context, fields)
	suite.assertValidation(err, "Invalid capacity values")

	fields = validCreate()
	fields.UsedCapacity = intPtr(101)
	_, err = suite.service.Create(suite.context, fields)
	suite.assertValidation(err, "Invalid capacity values")
}

func (suite *LocationServiceTestSuite) TestCreate_TemperatureControlledRequiresRange() {
	fields := validCreate()
	fields.TemperatureControlled = true
	_, err := suite.service.Create(suite.context, fields)
	suite.assertValidation(err, "Invalid temperature range")

	fields = validCreate()
	fields.TemperatureControlled = true
	fields.MinTemperature = floatPtr(8)
	fields.MaxTemperature = floatPtr(2)
	_, err = suite.service.Create(suite.context, fields)
	suite.assertValidation(err, "Invalid temperature range")
}

func (suite *LocationServiceTestSuite) TestCreate_TemperatureForbiddenWhenUncontrolled() {
	fields := validCreate()
	fields.MinTemperature = floatPtr(2)

	_, err := suite.service.Create(suite.context, fields)
	suite.assertValidation(err, "Temperature values not allowed when temperature control is disabled")
}

func (suite *LocationServiceTestSuite) TestCreate_ValidTemperatureRange() {
	fields := validCreate()
	fields.TemperatureControlled = true
	fields.MinTemperature = floatPtr(2)
	fields.MaxTemperature = floatPtr(8)

	suite.repo.On("Create", suite.context, mock.MatchedBy(func(location *models.Location) bool {
		return location.TemperatureControlled &&
			*location.MinTemperature == 2 && *location.MaxTemperature == 8
	})).Return(&models.Location{ID: 2}, nil)

	_, err := suite.service.Create(suite.context, fields)
	assert.NoError(suite.T(), err)
}

func (suite *LocationServiceTestSuite) TestCreate_InvalidStatus() {
	fields := validCreate()
	fields.Status = "BROKEN"

	_, err := suite.service.Create(suite.context, fields)
	suite.assertValidation(err, "Invalid status")
}

func (suite *LocationServiceTestSuite) TestCreate_RepoErrorWrapped() {
	suite.repo.On("Create", suite.context, mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := suite.service.Create(suite.context, validCreate())
	var dbErr *apperrors.DatabaseError
	assert.ErrorAs(suite.T(), err, &dbErr)
}

// --- Update ---

func (suite *LocationServiceTestSuite) TestUpdate_NegativeUsedCapacity() {
	_, err := suite.service.Update(suite.context, 1, &models.LocationUpdate{
		UsedCapacity: intPtr(-5),
	})
	suite.assertValidation(err, "Used capacity cannot be negative")
}

func (suite *LocationServiceTestSuite) TestUpdate_UsedCapacityExceedsCapacity() {
	_, err := suite.service.Update(suite.context, 1, &models.LocationUpdate{
		Capacity:     intPtr(50),
		UsedCapacity: intPtr(200),
	})
	suite.assertValidation(err, "Used capacity cannot exceed capacity")
}

// Pins the documented behavior: a usedCapacity sent without capacity is not
// compared against the stored capacity.
func (suite *LocationServiceTestSuite) TestUpdate_UsedCapacityOnly_NotCheckedAgainstStored() {
	fields := &models.LocationUpdate{UsedCapacity: intPtr(200)}
	suite.repo.On("Update", suite.context, int64(1), fields).
		Return(&models.Location{ID: 1, Capacity: 100, UsedCapacity: 200}, nil)

	updated, err := suite.service.Update(suite.context, 1, fields)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 200, updated.UsedCapacity)
}

func (suite *LocationServiceTestSuite) TestUpdate_TemperatureRules() {
	_, err := suite.service.Update(suite.context, 1, &models.LocationUpdate{
		TemperatureControlled: boolPtr(true),
	})
	suite.assertValidation(err, "Invalid temperature range")

	_, err = suite.service.Update(suite.context, 1, &models.LocationUpdate{
		TemperatureControlled: boolPtr(false),
		MinTemperature:        floatPtr(2),
	})
	suite.assertValidation(err, "Temperature values not allowed when temperature control is disabled")
}

func (suite *LocationServiceTestSuite) TestUpdate_NotFoundPassesThrough() {
	fields := &models.LocationUpdate{Name: stringPtr("Renamed")}
	suite.repo.On("Update", suite.context, int64(99), fields).
		Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.Update(suite.context, 99, fields)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

// --- List ---

func (suite *LocationServiceTestSuite) TestList_DefaultsAndPageMath() {
	suite.repo.On("List", suite.context, models.LocationFilter{Page: 1, Limit: 10}).
		Return([]*models.Location{{ID: 1}}, 25, nil)

	page, err := suite.service.List(suite.context, models.LocationFilter{})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, page.Page)
	assert.Equal(suite.T(), 10, page.Limit)
	assert.Equal(suite.T(), 25, page.TotalRecords)
	assert.Equal(suite.T(), 3, page.TotalPages)
}

func (suite *LocationServiceTestSuite) TestList_ClampsNegativeInputs() {
	suite.repo.On("List", suite.context, models.LocationFilter{Page: 1, Limit: 1}).
		Return([]*models.Location{}, 0, nil)

	page, err := suite.service.List(suite.context, models.LocationFilter{Page: -3, Limit: -5})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, page.Page)
	assert.Equal(suite.T(), 1, page.Limit)
	assert.Equal(suite.T(), 0, page.TotalPages)
}

func (suite *LocationServiceTestSuite) TestList_EmptyResultIsNotNil() {
	suite.repo.On("List", suite.context, mock.Anything).
		Return(nil, 0, nil)

	page, err := suite.service.List(suite.context, models.LocationFilter{})
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), page.Data)
	assert.Len(suite.T(), page.Data, 0)
}

// --- GetByID / Delete ---

func (suite *LocationServiceTestSuite) TestGetByID_NotFound() {
	suite.repo.On("GetByID", suite.context, int64(99)).
		Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.GetByID(suite.context, 99)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *LocationServiceTestSuite) TestDelete_NotFoundOnSecondCall() {
	suite.repo.On("Delete", suite.context, int64(1)).Return(nil).Once()
	suite.repo.On("Delete", suite.context, int64(1)).Return(apperrors.ErrNotFound).Once()

	assert.NoError(suite.T(), suite.service.Delete(suite.context, 1))
	assert.ErrorIs(suite.T(), suite.service.Delete(suite.context, 1), apperrors.ErrNotFound)
}

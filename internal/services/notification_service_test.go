package services

import (
	"context"
	"testing"
	"time"

	"pharmatrack/internal/alerting"
	"pharmatrack/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type NotificationServiceTestSuite struct {
	suite.Suite
	mockNotificationRepo *MockNotificationRepository
	mockNotifier         *MockNotifier
	service              NotificationService
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.mockNotificationRepo = &MockNotificationRepository{}
	suite.mockNotifier = &MockNotifier{}
	suite.service = NewNotificationService(suite.mockNotificationRepo, suite.mockNotifier, &MockCacheService{})
}

func (suite *NotificationServiceTestSuite) TearDownTest() {
	suite.mockNotificationRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}

func (suite *NotificationServiceTestSuite) failedNotification() *models.Notification {
	reason := "gateway timeout"
	return &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationMedicationExpiry,
		Channel:   models.ChannelEmail,
		Recipient: "patient@example.com",
		Subject:   "Medication ending soon",
		Message:   "Amoxicillin course ends in 2 days",
		Status:    models.NotificationFailed,
		Error:     &reason,
	}
}

func (suite *NotificationServiceTestSuite) TestRetry_SuccessfulResend() {
	notification := suite.failedNotification()
	sent := *notification
	sent.Status = models.NotificationSent

	suite.mockNotificationRepo.On("GetByID", mock.Anything, notification.ID).Return(notification, nil).Once()
	suite.mockNotificationRepo.On("IncrementRetry", mock.Anything, notification.ID).Return(nil).Once()
	suite.mockNotifier.On("Send", mock.Anything, models.ChannelEmail, notification.Recipient, notification.Subject, notification.Message).Return(nil).Once()
	suite.mockNotificationRepo.On("UpdateStatus", mock.Anything, notification.ID, models.NotificationSent, (*string)(nil), mock.AnythingOfType("*time.Time")).Return(nil).Once()
	suite.mockNotificationRepo.On("GetByID", mock.Anything, notification.ID).Return(&sent, nil).Once()

	result, err := suite.service.Retry(context.Background(), notification.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.NotificationSent, result.Status)
}

func (suite *NotificationServiceTestSuite) TestRetry_FailedResendStaysFailed() {
	notification := suite.failedNotification()

	suite.mockNotificationRepo.On("GetByID", mock.Anything, notification.ID).Return(notification, nil).Twice()
	suite.mockNotificationRepo.On("IncrementRetry", mock.Anything, notification.ID).Return(nil).Once()
	suite.mockNotifier.On("Send", mock.Anything, models.ChannelEmail, notification.Recipient, notification.Subject, notification.Message).
		Return(&alerting.DispatchError{Channel: "EMAIL", Cause: assert.AnError}).Once()
	suite.mockNotificationRepo.On("UpdateStatus", mock.Anything, notification.ID, models.NotificationFailed, mock.AnythingOfType("*string"), (*time.Time)(nil)).Return(nil).Once()

	result, err := suite.service.Retry(context.Background(), notification.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.NotificationFailed, result.Status)
}

func (suite *NotificationServiceTestSuite) TestRetry_RejectsNonFailedStatuses() {
	for _, status := range []models.NotificationStatus{
		models.NotificationPending,
		models.NotificationScheduled,
		models.NotificationSent,
		models.NotificationDelivered,
	} {
		notification := suite.failedNotification()
		notification.Status = status
		suite.mockNotificationRepo.On("GetByID", mock.Anything, notification.ID).Return(notification, nil).Once()

		result, err := suite.service.Retry(context.Background(), notification.ID)

		assert.Nil(suite.T(), result)
		var terr *alerting.InvalidStateTransitionError
		assert.ErrorAs(suite.T(), err, &terr)
		assert.Equal(suite.T(), string(status), terr.Current)
	}
	suite.mockNotificationRepo.AssertNotCalled(suite.T(), "IncrementRetry", mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestCounts_AggregatesStatuses() {
	suite.mockNotificationRepo.On("Count", mock.Anything).Return(10, nil).Once()
	suite.mockNotificationRepo.On("CountByStatus", mock.Anything, models.NotificationSent).Return(5, nil).Once()
	suite.mockNotificationRepo.On("CountByStatus", mock.Anything, models.NotificationDelivered).Return(2, nil).Once()
	suite.mockNotificationRepo.On("CountByStatus", mock.Anything, models.NotificationFailed).Return(3, nil).Once()

	counts, err := suite.service.Counts(context.Background())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 10, counts.Total)
	assert.Equal(suite.T(), 7, counts.Successful)
	assert.Equal(suite.T(), 3, counts.Failed)
}

func (suite *NotificationServiceTestSuite) TestListByStatus_RejectsUnknownStatus() {
	result, err := suite.service.ListByStatus(context.Background(), models.NotificationStatus("BOGUS"))

	assert.Nil(suite.T(), result)
	var verr *alerting.ValidationError
	assert.ErrorAs(suite.T(), err, &verr)
}

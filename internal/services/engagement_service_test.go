package services_test

import (
	"testing"

	"listly/internal/models"
	"listly/internal/services"
	"listly/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEngagementRepository is a mock implementation of repositories.EngagementRepository
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) CreateLike(like *models.Like) error {
	args := m.Called(like)
	return args.Error(0)
}

func (m *MockEngagementRepository) DeleteLike(listID, userID string) error {
	args := m.Called(listID, userID)
	return args.Error(0)
}

func (m *MockEngagementRepository) HasLiked(listID, userID string) (bool, error) {
	args := m.Called(listID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) CreateBookmark(bookmark *models.Bookmark) error {
	args := m.Called(bookmark)
	return args.Error(0)
}

func (m *MockEngagementRepository) DeleteBookmark(listID, userID string) error {
	args := m.Called(listID, userID)
	return args.Error(0)
}

func (m *MockEngagementRepository) HasBookmarked(listID, userID string) (bool, error) {
	args := m.Called(listID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) BookmarkedLists(userID string, limit, offset int) ([]models.List, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.List), args.Error(1)
}

func (m *MockEngagementRepository) CreateComment(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockEngagementRepository) ListComments(listID string) ([]models.Comment, error) {
	args := m.Called(listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func newEngagementService() (*services.EngagementService, *MockListRepository, *MockEngagementRepository) {
	mockListRepo := new(MockListRepository)
	mockEngagementRepo := new(MockEngagementRepository)
	// nil broker: events are skipped, engagement itself must still work
	return services.NewEngagementService(mockListRepo, mockEngagementRepo, nil), mockListRepo, mockEngagementRepo
}

func TestEngagementService_Like(t *testing.T) {
	engagementService, mockListRepo, mockEngagementRepo := newEngagementService()

	publicList := &models.List{ID: "list-1", AuthorID: "author-1", Visibility: models.VisibilityPublic}

	// Missing list is not-found
	mockListRepo.On("GetByID", "missing").Return(nil, apperr.New(apperr.KindNotFound, "list not found")).Once()
	err := engagementService.Like("missing", "actor-1", "actor")
	assert.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// Private lists take no engagement; they read as not-found
	privateList := &models.List{ID: "list-2", AuthorID: "author-1", Visibility: models.VisibilityPrivate}
	mockListRepo.On("GetByID", "list-2").Return(privateList, nil).Once()
	err = engagementService.Like("list-2", "actor-1", "actor")
	assert.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// A repeated like is a conflict
	mockListRepo.On("GetByID", "list-1").Return(publicList, nil).Once()
	mockEngagementRepo.On("HasLiked", "list-1", "actor-1").Return(true, nil).Once()
	err = engagementService.Like("list-1", "actor-1", "actor")
	assert.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	mockEngagementRepo.AssertNotCalled(t, "CreateLike", mock.Anything)

	// First like goes through
	mockListRepo.On("GetByID", "list-1").Return(publicList, nil).Once()
	mockEngagementRepo.On("HasLiked", "list-1", "actor-1").Return(false, nil).Once()
	mockEngagementRepo.On("CreateLike", mock.AnythingOfType("*models.Like")).Run(func(args mock.Arguments) {
		like := args.Get(0).(*models.Like)
		assert.Equal(t, "list-1", like.ListID)
		assert.Equal(t, "actor-1", like.UserID)
	}).Return(nil).Once()
	err = engagementService.Like("list-1", "actor-1", "actor")
	assert.NoError(t, err)

	mockListRepo.AssertExpectations(t)
	mockEngagementRepo.AssertExpectations(t)
}

func TestEngagementService_Unlike(t *testing.T) {
	engagementService, mockListRepo, mockEngagementRepo := newEngagementService()

	publicList := &models.List{ID: "list-1", AuthorID: "author-1", Visibility: models.VisibilityPublic}

	// Unliking a list that was never liked is a conflict, surfaced by the repo
	mockListRepo.On("GetByID", "list-1").Return(publicList, nil).Once()
	mockEngagementRepo.On("DeleteLike", "list-1", "actor-1").Return(apperr.New(apperr.KindConflict, "list not liked")).Once()
	err := engagementService.Unlike("list-1", "actor-1")
	assert.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// A real unlike goes through
	mockListRepo.On("GetByID", "list-1").Return(publicList, nil).Once()
	mockEngagementRepo.On("DeleteLike", "list-1", "actor-1").Return(nil).Once()
	err = engagementService.Unlike("list-1", "actor-1")
	assert.NoError(t, err)

	mockListRepo.AssertExpectations(t)
	mockEngagementRepo.AssertExpectations(t)
}

func TestEngagementService_Follow(t *testing.T) {
	engagementService, mockListRepo, mockEngagementRepo := newEngagementService()

	publicList := &models.List{ID: "list-1", AuthorID: "author-1", Visibility: models.VisibilityPublic}

	// A repeated follow is a conflict
	mockListRepo.On("GetByID", "list-1").Return(publicList, nil).Once()
	mockEngagementRepo.On("HasBookmarked", "list-1", "actor-1").Return(true, nil).Once()
	err := engagementService.Follow("list-1", "actor-1", "actor")
	assert.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// First follow goes through
	mockListRepo.On("GetByID", "list-1").Return(publicList, nil).Once()
	mockEngagementRepo.On("HasBookmarked", "list-1", "actor-1").Return(false, nil).Once()
	mockEngagementRepo.On("CreateBookmark", mock.AnythingOfType("*models.Bookmark")).Return(nil).Once()
	err = engagementService.Follow("list-1", "actor-1", "actor")
	assert.NoError(t, err)

	mockListRepo.AssertExpectations(t)
	mockEngagementRepo.AssertExpectations(t)
}

func TestEngagementService_Comment(t *testing.T) {
	engagementService, mockListRepo, mockEngagementRepo := newEngagementService()

	publicList := &models.List{ID: "list-1", AuthorID: "author-1", Visibility: models.VisibilityPublic}

	// Whitespace-only body is a validation error, nothing is created
	mockListRepo.On("GetByID", "list-1").Return(publicList, nil).Once()
	_, err := engagementService.Comment("list-1", "actor-1", "actor", "   ")
	assert.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	mockEngagementRepo.AssertNotCalled(t, "CreateComment", mock.Anything)

	// The body is trimmed on the way in
	mockListRepo.On("GetByID", "list-1").Return(publicList, nil).Once()
	mockEngagementRepo.On("CreateComment", mock.AnythingOfType("*models.Comment")).Run(func(args mock.Arguments) {
		comment := args.Get(0).(*models.Comment)
		assert.Equal(t, "nice list", comment.Body)
	}).Return(nil).Once()
	comment, err := engagementService.Comment("list-1", "actor-1", "actor", "  nice list  ")
	assert.NoError(t, err)
	assert.Equal(t, "nice list", comment.Body)

	mockListRepo.AssertExpectations(t)
	mockEngagementRepo.AssertExpectations(t)
}

func TestEngagementService_Bookmarks(t *testing.T) {
	engagementService, _, mockEngagementRepo := newEngagementService()

	mockEngagementRepo.On("BookmarkedLists", "actor-1", 10, 0).Return([]models.List{
		{ID: "list-1", Name: "A", Visibility: models.VisibilityPublic, ItemCount: 3},
	}, nil).Once()

	lists, err := engagementService.Bookmarks("actor-1", 0, 0)
	assert.NoError(t, err)
	assert.Len(t, lists, 1)
	assert.Equal(t, int64(3), lists[0].ItemCount)
	mockEngagementRepo.AssertExpectations(t)
}

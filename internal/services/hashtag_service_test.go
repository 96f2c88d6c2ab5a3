package services_test

import (
	"testing"

	"listly/internal/models"
	"listly/internal/services"
	"listly/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHashtagService_Create(t *testing.T) {
	mockTagRepo := new(MockHashtagRepository)
	hashtagService := services.NewHashtagService(mockTagRepo)

	// Blank tag rejected
	_, err := hashtagService.Create("   ")
	assert.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	mockTagRepo.AssertNotCalled(t, "Create", mock.Anything)

	// Tags are case-folded before everything else
	mockTagRepo.On("GetByTag", "golang").Return(nil, apperr.New(apperr.KindNotFound, "hashtag not found")).Once()
	mockTagRepo.On("Create", mock.AnythingOfType("*models.Hashtag")).Run(func(args mock.Arguments) {
		assert.Equal(t, "golang", args.Get(0).(*models.Hashtag).Tag)
	}).Return(nil).Once()
	tag, err := hashtagService.Create("  GoLang ")
	assert.NoError(t, err)
	assert.Equal(t, "golang", tag.Tag)
	mockTagRepo.AssertExpectations(t)

	// An existing tag comes back alongside a conflict error
	existing := &models.Hashtag{ID: "tag-1", Tag: "golang"}
	mockTagRepo.On("GetByTag", "golang").Return(existing, nil).Once()
	tag, err = hashtagService.Create("golang")
	assert.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Equal(t, "tag-1", tag.ID)
	mockTagRepo.AssertExpectations(t)

	// Losing the insert race surfaces the winning row
	mockTagRepo.On("GetByTag", "rust").Return(nil, apperr.New(apperr.KindNotFound, "hashtag not found")).Once()
	mockTagRepo.On("Create", mock.AnythingOfType("*models.Hashtag")).Return(apperr.New(apperr.KindConflict, "hashtag already exists")).Once()
	winner := &models.Hashtag{ID: "tag-2", Tag: "rust"}
	mockTagRepo.On("GetByTag", "rust").Return(winner, nil).Once()
	tag, err = hashtagService.Create("rust")
	assert.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Equal(t, "tag-2", tag.ID)
	mockTagRepo.AssertExpectations(t)
}

func TestHashtagService_Search(t *testing.T) {
	mockTagRepo := new(MockHashtagRepository)
	hashtagService := services.NewHashtagService(mockTagRepo)

	mockTagRepo.On("Search", "go").Return([]models.Hashtag{
		{ID: "tag-1", Tag: "golang"},
		{ID: "tag-2", Tag: "django"},
	}, nil).Once()

	tags, err := hashtagService.Search(" Go ")
	assert.NoError(t, err)
	assert.Len(t, tags, 2)
	mockTagRepo.AssertExpectations(t)
}

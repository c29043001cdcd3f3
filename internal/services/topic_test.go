package services_test

import (
	"context"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/models"
	"github.com/devfolio/devfolio-api/internal/services"
)

func newTopicService(t *testing.T) (*services.TopicService, *services.MockTopicReader, *services.MockTopicWriter, *services.MockUserReader, *services.MockMediaUploader) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockReader := services.NewMockTopicReader(ctrl)
	mockWriter := services.NewMockTopicWriter(ctrl)
	mockUsers := services.NewMockUserReader(ctrl)
	mockUploader := services.NewMockMediaUploader(ctrl)

	svc := services.NewTopicService(mockReader, mockWriter, mockUsers, mockUploader, zap.NewNop().Sugar())
	return svc, mockReader, mockWriter, mockUsers, mockUploader
}

// tempImage spools a throwaway file so services can delete it after the call.
func tempImage(t *testing.T, contentType string, size int64) *models.ImageUpload {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "upload-*")
	assert.NoError(t, err)
	f.Close()
	return &models.ImageUpload{TempPath: f.Name(), ContentType: contentType, Size: size}
}

func TestTopicService_Create(t *testing.T) {
	userID := uuid.New()
	ident := models.Identity{UserID: userID, Name: "alice"}
	user := &models.UserDB{ID: userID, Name: "alice"}

	t.Run("successful create", func(t *testing.T) {
		svc, _, mockWriter, mockUsers, mockUploader := newTopicService(t)
		image := tempImage(t, "image/png", 1024)

		mockUsers.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
		mockUploader.EXPECT().Upload(gomock.Any(), image.TempPath).
			Return("https://cdn.example.com/go.png", nil)
		mockWriter.EXPECT().Save(gomock.Any(), "Go", "All things Go", "https://cdn.example.com/go.png", userID).
			Return(&models.TopicDB{ID: uuid.New(), Name: "Go", UserID: userID}, nil)

		topic, err := svc.Create(context.Background(), ident, "Go", "All things Go", image)
		assert.NoError(t, err)
		assert.Equal(t, "Go", topic.Name)
		assert.NoFileExists(t, image.TempPath)
	})

	t.Run("deleted user", func(t *testing.T) {
		svc, _, _, mockUsers, _ := newTopicService(t)
		mockUsers.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

		_, err := svc.Create(context.Background(), ident, "Go", "All things Go", tempImage(t, "image/png", 1024))
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _, _, mockUsers, _ := newTopicService(t)
		mockUsers.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)

		_, err := svc.Create(context.Background(), ident, "", "All things Go", tempImage(t, "image/png", 1024))
		assert.ErrorIs(t, err, services.ErrAllFieldsRequired)
	})

	t.Run("missing image", func(t *testing.T) {
		svc, _, _, mockUsers, _ := newTopicService(t)
		mockUsers.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)

		_, err := svc.Create(context.Background(), ident, "Go", "All things Go", nil)
		assert.ErrorIs(t, err, services.ErrImageRequired)
	})

	t.Run("non-image upload", func(t *testing.T) {
		svc, _, _, mockUsers, _ := newTopicService(t)
		mockUsers.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)

		_, err := svc.Create(context.Background(), ident, "Go", "All things Go", tempImage(t, "application/pdf", 1024))
		assert.ErrorIs(t, err, services.ErrImageRequired)
	})

	t.Run("oversized image never reaches the uploader", func(t *testing.T) {
		svc, _, _, mockUsers, _ := newTopicService(t)
		mockUsers.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)

		image := tempImage(t, "image/png", services.MaxImageSize+1)
		_, err := svc.Create(context.Background(), ident, "Go", "All things Go", image)
		assert.ErrorIs(t, err, services.ErrImageTooLarge)
		assert.NoFileExists(t, image.TempPath)
	})
}

func TestTopicService_List(t *testing.T) {
	t.Run("pagination math", func(t *testing.T) {
		svc, mockReader, _, _, _ := newTopicService(t)
		mockReader.EXPECT().List(gomock.Any(), "", 6, 6).
			Return(make([]models.TopicDB, 6), int64(13), nil)

		page, err := svc.List(context.Background(), 2, "")
		assert.NoError(t, err)
		assert.Equal(t, 2, page.CurrentPage)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, int64(13), page.TotalItems)
		assert.Equal(t, 6, page.PerPage)
		assert.Len(t, page.Data, 6)
	})

	t.Run("non-positive page becomes the first page", func(t *testing.T) {
		svc, mockReader, _, _, _ := newTopicService(t)
		mockReader.EXPECT().List(gomock.Any(), "go", 0, 6).
			Return([]models.TopicDB{}, int64(0), nil)

		page, err := svc.List(context.Background(), -3, "go")
		assert.NoError(t, err)
		assert.Equal(t, 1, page.CurrentPage)
		assert.Equal(t, 0, page.TotalPages)
	})
}

func TestTopicService_Get(t *testing.T) {
	topicID := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc, mockReader, _, _, _ := newTopicService(t)
		mockReader.EXPECT().GetByID(gomock.Any(), topicID).
			Return(&models.TopicDB{ID: topicID, Name: "Go"}, nil)

		topic, err := svc.Get(context.Background(), topicID)
		assert.NoError(t, err)
		assert.Equal(t, topicID, topic.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockReader, _, _, _ := newTopicService(t)
		mockReader.EXPECT().GetByID(gomock.Any(), topicID).Return(nil, nil)

		_, err := svc.Get(context.Background(), topicID)
		assert.ErrorIs(t, err, services.ErrTopicNotFound)
	})
}

func TestTopicService_Update(t *testing.T) {
	ownerID := uuid.New()
	topicID := uuid.New()
	owner := models.Identity{UserID: ownerID, Name: "alice"}
	stored := &models.TopicDB{
		ID:     topicID,
		Name:   "Go",
		UserID: ownerID,
		Posts:  []models.TopicPost{{ID: uuid.New(), Title: "Generics"}},
	}

	t.Run("owner updates and posts are preserved", func(t *testing.T) {
		svc, mockReader, mockWriter, _, mockUploader := newTopicService(t)
		image := tempImage(t, "image/png", 1024)

		mockReader.EXPECT().GetByID(gomock.Any(), topicID).Return(stored, nil)
		mockUploader.EXPECT().Upload(gomock.Any(), image.TempPath).
			Return("https://cdn.example.com/new.png", nil)
		mockWriter.EXPECT().Update(gomock.Any(), topicID, "Golang", "Updated", "https://cdn.example.com/new.png").
			Return(&models.TopicDB{ID: topicID, Name: "Golang", UserID: ownerID}, nil)

		topic, err := svc.Update(context.Background(), owner, topicID, "Golang", "Updated", image)
		assert.NoError(t, err)
		assert.Equal(t, "Golang", topic.Name)
		assert.Len(t, topic.Posts, 1)
	})

	t.Run("non-owner is indistinguishable from missing", func(t *testing.T) {
		svc, mockReader, _, _, _ := newTopicService(t)
		mockReader.EXPECT().GetByID(gomock.Any(), topicID).Return(stored, nil)

		stranger := models.Identity{UserID: uuid.New(), Name: "bob"}
		_, err := svc.Update(context.Background(), stranger, topicID, "Golang", "Updated", tempImage(t, "image/png", 1024))
		assert.ErrorIs(t, err, services.ErrTopicNotOwned)
	})

	t.Run("missing topic", func(t *testing.T) {
		svc, mockReader, _, _, _ := newTopicService(t)
		mockReader.EXPECT().GetByID(gomock.Any(), topicID).Return(nil, nil)

		_, err := svc.Update(context.Background(), owner, topicID, "Golang", "Updated", tempImage(t, "image/png", 1024))
		assert.ErrorIs(t, err, services.ErrTopicNotOwned)
	})
}

func TestTopicService_Delete(t *testing.T) {
	topicID := uuid.New()

	t.Run("any authenticated user may delete", func(t *testing.T) {
		svc, mockReader, mockWriter, _, _ := newTopicService(t)
		mockReader.EXPECT().GetByID(gomock.Any(), topicID).
			Return(&models.TopicDB{ID: topicID, UserID: uuid.New()}, nil)
		mockWriter.EXPECT().Delete(gomock.Any(), topicID).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), topicID))
	})

	t.Run("missing topic", func(t *testing.T) {
		svc, mockReader, _, _, _ := newTopicService(t)
		mockReader.EXPECT().GetByID(gomock.Any(), topicID).Return(nil, nil)

		assert.ErrorIs(t, svc.Delete(context.Background(), topicID), services.ErrTopicNotFound)
	})
}

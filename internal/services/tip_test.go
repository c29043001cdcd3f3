package services_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/models"
	"github.com/devfolio/devfolio-api/internal/services"
)

func newTipService(t *testing.T) (*services.TipService, *services.MockTipReader, *services.MockTipWriter, *services.MockUserReader) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockReader := services.NewMockTipReader(ctrl)
	mockWriter := services.NewMockTipWriter(ctrl)
	mockUsers := services.NewMockUserReader(ctrl)

	svc := services.NewTipService(mockReader, mockWriter, mockUsers, zap.NewNop().Sugar())
	return svc, mockReader, mockWriter, mockUsers
}

func TestTipService_Create(t *testing.T) {
	userID := uuid.New()
	ident := models.Identity{UserID: userID, Name: "alice"}

	t.Run("successful create", func(t *testing.T) {
		svc, _, mockWriter, mockUsers := newTipService(t)
		mockUsers.EXPECT().GetByID(gomock.Any(), userID).
			Return(&models.UserDB{ID: userID, Name: "alice"}, nil)
		mockWriter.EXPECT().Save(gomock.Any(), "Use contexts", "Pass them everywhere", userID).
			Return(&models.TipDB{ID: uuid.New(), Title: "Use contexts", UserID: userID}, nil)

		tip, err := svc.Create(context.Background(), ident, "Use contexts", "Pass them everywhere")
		assert.NoError(t, err)
		assert.Equal(t, "Use contexts", tip.Title)
	})

	t.Run("deleted user", func(t *testing.T) {
		svc, _, _, mockUsers := newTipService(t)
		mockUsers.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

		_, err := svc.Create(context.Background(), ident, "Use contexts", "Pass them everywhere")
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _, _, mockUsers := newTipService(t)
		mockUsers.EXPECT().GetByID(gomock.Any(), userID).
			Return(&models.UserDB{ID: userID}, nil)

		_, err := svc.Create(context.Background(), ident, "Use contexts", "")
		assert.ErrorIs(t, err, services.ErrAllFieldsRequired)
	})
}

func TestTipService_List(t *testing.T) {
	svc, mockReader, _, _ := newTipService(t)
	mockReader.EXPECT().List(gomock.Any(), "", 12, 6).
		Return([]models.TipDB{{Title: "last one"}}, int64(13), nil)

	page, err := svc.List(context.Background(), 3, "")
	assert.NoError(t, err)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Data, 1)
}

func TestTipService_Get(t *testing.T) {
	tipID := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc, mockReader, _, _ := newTipService(t)
		mockReader.EXPECT().GetByID(gomock.Any(), tipID).
			Return(&models.TipDB{ID: tipID}, nil)

		tip, err := svc.Get(context.Background(), tipID)
		assert.NoError(t, err)
		assert.Equal(t, tipID, tip.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockReader, _, _ := newTipService(t)
		mockReader.EXPECT().GetByID(gomock.Any(), tipID).Return(nil, nil)

		_, err := svc.Get(context.Background(), tipID)
		assert.ErrorIs(t, err, services.ErrTipNotFound)
	})
}

func TestTipService_Update(t *testing.T) {
	ownerID := uuid.New()
	tipID := uuid.New()
	stored := &models.TipDB{ID: tipID, Title: "Old", UserID: ownerID}

	t.Run("owner updates", func(t *testing.T) {
		svc, mockReader, mockWriter, _ := newTipService(t)
		mockReader.EXPECT().GetByID(gomock.Any(), tipID).Return(stored, nil)
		mockWriter.EXPECT().Update(gomock.Any(), tipID, "New", "Fresh").
			Return(&models.TipDB{ID: tipID, Title: "New", UserID: ownerID}, nil)

		tip, err := svc.Update(context.Background(), models.Identity{UserID: ownerID}, tipID, "New", "Fresh")
		assert.NoError(t, err)
		assert.Equal(t, "New", tip.Title)
	})

	t.Run("non-owner never reaches the writer", func(t *testing.T) {
		svc, mockReader, _, _ := newTipService(t)
		mockReader.EXPECT().GetByID(gomock.Any(), tipID).Return(stored, nil)

		_, err := svc.Update(context.Background(), models.Identity{UserID: uuid.New()}, tipID, "New", "Fresh")
		assert.ErrorIs(t, err, services.ErrTipNotOwned)
	})

	t.Run("missing tip", func(t *testing.T) {
		svc, mockReader, _, _ := newTipService(t)
		mockReader.EXPECT().GetByID(gomock.Any(), tipID).Return(nil, nil)

		_, err := svc.Update(context.Background(), models.Identity{UserID: ownerID}, tipID, "New", "Fresh")
		assert.ErrorIs(t, err, services.ErrTipNotOwned)
	})
}

func TestTipService_Delete(t *testing.T) {
	tipID := uuid.New()

	t.Run("any authenticated user may delete", func(t *testing.T) {
		svc, mockReader, mockWriter, _ := newTipService(t)
		mockReader.EXPECT().GetByID(gomock.Any(), tipID).
			Return(&models.TipDB{ID: tipID, UserID: uuid.New()}, nil)
		mockWriter.EXPECT().Delete(gomock.Any(), tipID).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), tipID))
	})

	t.Run("missing tip", func(t *testing.T) {
		svc, mockReader, _, _ := newTipService(t)
		mockReader.EXPECT().GetByID(gomock.Any(), tipID).Return(nil, nil)

		assert.ErrorIs(t, svc.Delete(context.Background(), tipID), services.ErrTipNotFound)
	})
}

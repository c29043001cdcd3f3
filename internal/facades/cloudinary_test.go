package facades

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewCloudinaryFacade(t *testing.T) {
	t.Run("missing cloud name", func(t *testing.T) {
		facade, err := NewCloudinaryFacade("", "key", "secret", "siteassets", zap.NewNop().Sugar())
		assert.Error(t, err)
		assert.Nil(t, facade)
	})

	t.Run("valid params", func(t *testing.T) {
		facade, err := NewCloudinaryFacade("demo", "key", "secret", "siteassets", zap.NewNop().Sugar())
		assert.NoError(t, err)
		assert.NotNil(t, facade)
	})
}

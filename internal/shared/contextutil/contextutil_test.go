package contextutil_test

import (
	"context"
	"testing"

	"go-reqdesk/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	t.Run("round trips through the context", func(t *testing.T) {
		ctx := contextutil.WithRequestID(context.Background(), "req-123")
		assert.Equal(t, "req-123", contextutil.GetRequestID(ctx))
	})

	t.Run("empty when unset", func(t *testing.T) {
		assert.Equal(t, "", contextutil.GetRequestID(context.Background()))
	})
}

func TestAccountID(t *testing.T) {
	t.Run("round trips through the context", func(t *testing.T) {
		ctx := contextutil.WithAccountID(context.Background(), "42")
		assert.Equal(t, "42", contextutil.GetAccountID(ctx))
	})

	t.Run("empty when unset", func(t *testing.T) {
		assert.Equal(t, "", contextutil.GetAccountID(context.Background()))
	})

	t.Run("keys do not collide", func(t *testing.T) {
		ctx := contextutil.WithRequestID(context.Background(), "req-123")
		ctx = contextutil.WithAccountID(ctx, "42")
		assert.Equal(t, "req-123", contextutil.GetRequestID(ctx))
		assert.Equal(t, "42", contextutil.GetAccountID(ctx))
	})
}

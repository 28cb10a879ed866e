package dispatcher_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GunnarSturla/dispatcher"
)

type OrderPlaced struct {
	OrderID string  `json:"order_id"`
	Amount  float64 `json:"amount"`
}

func TestNewCallbackFunc(t *testing.T) {
	t.Parallel()

	t.Run("receives a pre-typed payload", func(t *testing.T) {
		t.Parallel()

		d := dispatcher.New()

		var got OrderPlaced
		d.Register(dispatcher.NewCallbackFunc(func(ctx context.Context, p OrderPlaced) error {
			got = p
			return nil
		}))

		want := OrderPlaced{OrderID: "o-1", Amount: 99.5}
		require.NoError(t, d.Dispatch(context.Background(), want))
		assert.Equal(t, want, got)
	})

	t.Run("unwraps an action envelope", func(t *testing.T) {
		t.Parallel()

		d := dispatcher.New()

		var got OrderPlaced
		d.Register(dispatcher.NewCallbackFunc(func(ctx context.Context, p OrderPlaced) error {
			got = p
			return nil
		}))

		act := dispatcher.NewAction(OrderPlaced{OrderID: "o-2", Amount: 10})
		require.NoError(t, d.Dispatch(context.Background(), act))
		assert.Equal(t, "o-2", got.OrderID)
	})

	t.Run("unmarshals raw JSON bytes", func(t *testing.T) {
		t.Parallel()

		d := dispatcher.New()

		var got OrderPlaced
		d.Register(dispatcher.NewCallbackFunc(func(ctx context.Context, p OrderPlaced) error {
			got = p
			return nil
		}))

		data := []byte(`{"order_id":"o-3","amount":5}`)
		require.NoError(t, d.Dispatch(context.Background(), data))
		assert.Equal(t, OrderPlaced{OrderID: "o-3", Amount: 5}, got)
	})

	t.Run("rejects a mismatched payload type", func(t *testing.T) {
		t.Parallel()

		d := dispatcher.New()

		d.Register(dispatcher.NewCallbackFunc(func(ctx context.Context, p OrderPlaced) error {
			return nil
		}))

		err := d.Dispatch(context.Background(), 42)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected payload type")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		d := dispatcher.New()

		d.Register(dispatcher.NewCallbackFunc(func(ctx context.Context, p OrderPlaced) error {
			return nil
		}))

		err := d.Dispatch(context.Background(), []byte(`{broken`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal payload")
	})
}

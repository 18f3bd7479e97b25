package scoped

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUnboundKey(t *testing.T) {
	key := Declare[string]("user")

	_, err := key.Get(context.Background())
	require.ErrorIs(t, err, ErrUnbound)

	var unbound *UnboundKeyError
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, AnyKey(key), unbound.Key)
	assert.Contains(t, unbound.Error(), "user[string]")
}

func TestGetOrFallback(t *testing.T) {
	key := Declare[string]("user")
	ctx := context.Background()

	assert.Equal(t, "nobody", key.GetOr(ctx, "nobody"))

	err := Run(ctx, NewCarrier(key.Bind("ana")), func(ctx context.Context) error {
		assert.Equal(t, "ana", key.GetOr(ctx, "nobody"))
		return nil
	})
	require.NoError(t, err)
}

func TestMustGetPanicsWhenUnbound(t *testing.T) {
	key := Declare[int]("count")

	require.Panics(t, func() {
		key.MustGet(context.Background())
	})
}

func TestIsBound(t *testing.T) {
	key := Declare[int]("count")
	ctx := context.Background()

	assert.False(t, key.IsBound(ctx))

	err := Run(ctx, NewCarrier(key.Bind(1)), func(ctx context.Context) error {
		assert.True(t, key.IsBound(ctx))
		return nil
	})
	require.NoError(t, err)
}

func TestGetIsDeterministicForFixedContext(t *testing.T) {
	key := Declare[int]("count")

	err := Run(context.Background(), NewCarrier(key.Bind(7)), func(ctx context.Context) error {
		first := key.MustGet(ctx)
		second := key.MustGet(ctx)

		assert.Equal(t, first, second)

		return nil
	})
	require.NoError(t, err)
}

func TestResolutionAcrossStructValues(t *testing.T) {
	type request struct {
		ID   string
		Hops int
	}

	key := Declare[request]("request")

	err := Run(context.Background(), NewCarrier(key.Bind(request{ID: "r-1", Hops: 3})), func(ctx context.Context) error {
		got := key.MustGet(ctx)
		assert.Equal(t, "r-1", got.ID)
		assert.Equal(t, 3, got.Hops)

		return nil
	})
	require.NoError(t, err)
}

func TestValueResolvesThroughAnyKey(t *testing.T) {
	user := Declare[string]("user")
	count := Declare[int]("count")
	keys := []AnyKey{user, count}

	err := Run(context.Background(), NewCarrier(user.Bind("ana"), count.Bind(2)), func(ctx context.Context) error {
		for _, key := range keys {
			v, ok := Value(ctx, key)
			require.True(t, ok)
			assert.NotNil(t, v)
		}

		v, _ := Value(ctx, user)
		assert.Equal(t, "ana", v)

		return nil
	})
	require.NoError(t, err)

	_, ok := Value(context.Background(), user)
	assert.False(t, ok)
}

func TestWideFrameUsesIndexedLookup(t *testing.T) {
	keys := make([]*Key[int], frameIndexThreshold+4)
	c := Carrier{}

	for i := range keys {
		keys[i] = Declare[int]("wide")
		c = c.With(keys[i].Bind(i))
	}

	err := Run(context.Background(), c, func(ctx context.Context) error {
		require.NotNil(t, frameFrom(ctx).index, "wide frames build an index at construction")

		for i, key := range keys {
			assert.Equal(t, i, key.MustGet(ctx))
		}

		return nil
	})
	require.NoError(t, err)
}

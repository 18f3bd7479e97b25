package scoped

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeEmptyContext(t *testing.T) {
	assert.Nil(t, Describe(context.Background()))
}

func TestDescribeNearestFirstWithShadowing(t *testing.T) {
	user := Declare[string]("user")
	request := Declare[int]("request")

	err := Run(context.Background(), NewCarrier(user.Bind("outer")), func(ctx context.Context) error {
		return Run(ctx, NewCarrier(user.Bind("inner"), request.Bind(7)), func(ctx context.Context) error {
			infos := Describe(ctx)
			require.Len(t, infos, 3)

			assert.Equal(t, AnyKey(user), infos[0].Key)
			assert.Equal(t, "inner", infos[0].Value)
			assert.Equal(t, 2, infos[0].Depth)
			assert.False(t, infos[0].Shadowed)

			assert.Equal(t, AnyKey(request), infos[1].Key)
			assert.Equal(t, 2, infos[1].Depth)

			assert.Equal(t, AnyKey(user), infos[2].Key)
			assert.Equal(t, "outer", infos[2].Value)
			assert.Equal(t, 1, infos[2].Depth)
			assert.True(t, infos[2].Shadowed, "the outer binding is shadowed by the inner one")

			return nil
		})
	})
	require.NoError(t, err)
}

func TestDescribeIncludesNonInheritable(t *testing.T) {
	secret := Declare[string]("secret", NotInherited())

	err := Run(context.Background(), NewCarrier(secret.Bind("hunter2")), func(ctx context.Context) error {
		infos := Describe(ctx)
		require.Len(t, infos, 1)
		assert.False(t, infos[0].Key.Inheritable())

		assert.Empty(t, Capture(ctx).Describe(), "the snapshot view omits what Capture omits")

		return nil
	})
	require.NoError(t, err)
}

package gallery

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jtejido/sourceafis"
	"github.com/jtejido/sourceafis/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func template(t *testing.T, x int) *sourceafis.Template {
	t.Helper()
	tpl, err := sourceafis.NewTemplate(300, 300, []sourceafis.Minutia{
		sourceafis.NewMinutia(x, 10, 0.5, sourceafis.Ending),
		sourceafis.NewMinutia(x+100, 120, 2.5, sourceafis.Bifurcation),
	})
	require.NoError(t, err)
	return tpl
}

func testStore(t *testing.T, store Store) {
	ctx := context.Background()

	n, err := store.Len(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, store.Put(ctx, "b", template(t, 20)))
	require.NoError(t, store.Put(ctx, "a", template(t, 10)))
	require.NoError(t, store.Put(ctx, "c", template(t, 30)))
	require.NoError(t, store.Put(ctx, "b", template(t, 40)), "put replaces")

	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, template(t, 40), got)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
	assert.Equal(t, "c", list[2].ID)
	assert.Equal(t, template(t, 10), list[0].Template)

	require.NoError(t, store.Delete(ctx, "a"))
	assert.ErrorIs(t, store.Delete(ctx, "a"), ErrNotFound)
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	n, err = store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.ErrorIs(t, store.Put(ctx, "", template(t, 1)), ErrInvalidID)
	assert.ErrorIs(t, store.Put(ctx, "x", nil), sourceafis.ErrNilTemplate)

	id, err := Enroll(ctx, store, "", template(t, 50))
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
	id, err = Enroll(ctx, store, "named", template(t, 60))
	require.NoError(t, err)
	assert.Equal(t, "named", id)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStoreConcurrent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	tpl := template(t, 10)
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				_, _ = Enroll(ctx, store, "", tpl)
				_, _ = store.List(ctx)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 400, n)
}

// TestRedisStore needs a disposable server, e.g.
// SOURCEAFIS_TEST_REDIS=localhost:6379.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("SOURCEAFIS_TEST_REDIS")
	if addr == "" {
		t.Skip("SOURCEAFIS_TEST_REDIS not set")
	}
	ctx := context.Background()
	store, err := OpenRedis(ctx, config.RedisConfig{Addr: addr, Key: "sourceafis:test:" + uuid.NewString()})
	require.NoError(t, err)
	t.Cleanup(func() {
		store.client.Del(context.Background(), store.key)
		store.Close()
	})
	testStore(t, store)
}

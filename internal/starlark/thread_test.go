package starlark

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

func TestThreadPool_GetPut(t *testing.T) {
	pool := NewThreadPool(5, nil)

	thread := pool.Get("test1")
	require.NotNil(t, thread)
	assert.Equal(t, "test1", thread.Name)

	pool.Put(thread)
	assert.Equal(t, 1, pool.Size())

	thread2 := pool.Get("test2")
	assert.Equal(t, 0, pool.Size())
	assert.Equal(t, "test2", thread2.Name, "reused thread takes the new name")
}

func TestThreadPool_MaxSize(t *testing.T) {
	pool := NewThreadPool(2, nil)

	threads := make([]*starlark.Thread, 3)
	for i := range threads {
		threads[i] = pool.Get("test")
	}
	for _, thread := range threads {
		pool.Put(thread)
	}

	assert.Equal(t, 2, pool.Size())
}

func TestThreadPool_Concurrent(t *testing.T) {
	pool := NewThreadPool(10, nil)
	var wg sync.WaitGroup

	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Put(pool.Get("concurrent"))
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, pool.Size(), 10)
}

func execScript(t *testing.T, src string) starlark.StringDict {
	t.Helper()
	thread := &starlark.Thread{Name: "load"}
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, "test.star", src, Predeclared())
	require.NoError(t, err)
	return globals
}

func TestThreadPool_Call(t *testing.T) {
	globals := execScript(t, "def double(n):\n    return n * 2\n")
	pool := NewThreadPool(2, nil)

	var wg sync.WaitGroup
	results := make([]int64, 20)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := pool.Call("double", globals["double"].(starlark.Callable), starlark.Tuple{starlark.MakeInt(i)})
			if assert.NoError(t, err) {
				results[i], _ = v.(starlark.Int).Int64()
			}
		}()
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, int64(i*2), got)
	}
}

func TestThreadPool_CallStepLimit(t *testing.T) {
	globals := execScript(t, "def spin():\n    for i in range(1000000000):\n        pass\n")
	pool := NewThreadPool(2, nil)
	pool.maxSteps = 1000

	_, err := pool.Call("spin", globals["spin"].(starlark.Callable), nil)
	require.Error(t, err)
	assert.Equal(t, 0, pool.Size(), "cancelled thread is not reused")
}

package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForVisitsEveryIndexOnce(t *testing.T) {
	tests := []struct {
		name string
		n    int
		opts []Option
	}{
		{"default", 1000, nil},
		{"single thread", 100, []Option{SingleThread(true)}},
		{"two workers", 257, []Option{WithWorkers(2)}},
		{"unbalanced", 33, []Option{Unbalanced(), WithWorkers(8)}},
		{"one index", 1, nil},
		{"empty", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := make([]int32, tt.n)
			For(tt.n, func(i int) {
				atomic.AddInt32(&hits[i], 1)
			}, tt.opts...)
			for i, h := range hits {
				assert.Equal(t, int32(1), h, "index %d", i)
			}
		})
	}
}

func TestSingleThreadRunsInOrder(t *testing.T) {
	var order []int
	For(10, func(i int) {
		order = append(order, i)
	}, SingleThread(true))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestSetDefaultWorkers(t *testing.T) {
	defer SetDefaultWorkers(0)

	SetDefaultWorkers(3)
	assert.Equal(t, 3, DefaultWorkers())

	SetDefaultWorkers(-1)
	assert.Greater(t, DefaultWorkers(), 0)
}

func TestForceSingleThread(t *testing.T) {
	SetForceSingleThread(true)
	defer SetForceSingleThread(false)

	var order []int
	For(6, func(i int) {
		order = append(order, i)
	}, WithWorkers(4), Unbalanced())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, order)
}

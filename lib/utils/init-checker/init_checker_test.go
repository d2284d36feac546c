package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface {
	Name() string
}

type impl struct{}

func (i *impl) Name() string { return "impl" }

func TestCheckInit(t *testing.T) {
	t.Run(`all initialized`, func(t *testing.T) {
		require.NotPanics(t, func() {
			CheckInit("store", &impl{}, "limit", 0)
		})
	})
	t.Run(`nil interface`, func(t *testing.T) {
		var p provider
		require.Panics(t, func() {
			CheckInit("store", p)
		})
	})
	t.Run(`nil pointer inside interface`, func(t *testing.T) {
		var ptr *impl
		var p provider = ptr
		require.Panics(t, func() {
			CheckInit("store", p)
		})
	})
	t.Run(`odd arguments`, func(t *testing.T) {
		require.Panics(t, func() {
			CheckInit("store")
		})
	})
}

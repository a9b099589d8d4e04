//go:build !statsview

package statsview

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestStub(t *testing.T) {
	assert.False(t, Available())
	Launch(log.NewTestLogger(t))
}

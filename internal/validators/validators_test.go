package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone("+55 11 99999-0000"))
	assert.True(t, IsPhone("(11) 3333-4444"))
	assert.False(t, IsPhone("abc"))
	assert.False(t, IsPhone("123"))
}

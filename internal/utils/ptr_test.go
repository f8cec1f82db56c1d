package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOrNil(t *testing.T) {
	assert.Nil(t, StringOrNil(""))
	assert.Nil(t, StringOrNil("   "))
	assert.Equal(t, "avatar.png", *StringOrNil(" avatar.png "))
}

func TestOrZeroAndOrDefault(t *testing.T) {
	assert.Equal(t, 0, OrZero[int](nil))
	assert.Equal(t, 3, OrZero(Ptr(3)))
	assert.Equal(t, 90, OrDefault(nil, 90))
	assert.Equal(t, 45, OrDefault(Ptr(45), 90))
}

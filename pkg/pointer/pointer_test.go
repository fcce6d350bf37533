// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/critique/pkg/pointer"
)

func TestAssign(t *testing.T) {
	bio := "old"

	assert.False(t, pointer.Assign(&bio, nil))
	assert.Equal(t, "old", bio)

	assert.True(t, pointer.Assign(&bio, pointer.To("new")))
	assert.Equal(t, "new", bio)
}

func TestVal(t *testing.T) {
	var missing *int
	assert.Equal(t, 0, pointer.Val(missing))
	assert.Equal(t, 7, pointer.Val(pointer.To(7)))
}

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	defer func(r, c string) { Release, Commit = r, c }(Release, Commit)

	Release, Commit = "1.12.3", ""
	assert.Equal(t, "1.12.3", String())

	Commit = "0123456789abcdef"
	assert.Equal(t, "1.12.3 (0123456)", String())

	Commit = "abc"
	assert.Equal(t, "1.12.3 (abc)", String())
}

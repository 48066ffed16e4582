package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCenterCode(t *testing.T) {
	assert.Equal(t, "1", CenterCode("Vrindavan BACE"))
	assert.Equal(t, "2", CenterCode("mayapur bace"))
	assert.Equal(t, "3", CenterCode("  Giri Govardhan BACE "))
	assert.Equal(t, "4", CenterCode("Temple VTA"))
	assert.Equal(t, "5", CenterCode("Temple Brahmachari"))

	// Unknown centers fall into the shared bucket.
	assert.Equal(t, DefaultOtherCenterCode, CenterCode("Pune BACE"))
	assert.Equal(t, DefaultOtherCenterCode, CenterCode(""))
}

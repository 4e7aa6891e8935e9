package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSearch(t *testing.T) {
	assert.Equal(t, "smi", NormalizeSearch("  SMI "))
	assert.Equal(t, "ann lee", NormalizeSearch("Ann \t  Lee"))
	// fullwidth letters fold to ASCII under NFKC
	assert.Equal(t, "abc", NormalizeSearch("ＡＢＣ"))
	assert.Equal(t, "", NormalizeSearch("\x00\x07"))
}

func TestLikeContains(t *testing.T) {
	assert.Equal(t, "%smi%", LikeContains("smi"))
	assert.Equal(t, `%50\%\_off\\%`, LikeContains(`50%_off\`))
}

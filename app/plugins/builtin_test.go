package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailable(t *testing.T) {
	got := Available()
	assert.Len(t, got, len(Kinds))
	assert.ElementsMatch(t, []string{"xlsx", "csv", "html_table"}, got[TableDecoders])
	assert.ElementsMatch(t, []string{"xlsx", "csv", "html_table", "html_sections"}, got[DocumentDecoders])
	assert.ElementsMatch(t, []string{"none", "memory", "sqlite"}, got[CacheBackends])
	assert.ElementsMatch(t, []string{"nop", "prometheus"}, got[MetricsSinks])
}

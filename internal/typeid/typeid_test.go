package typeid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIDsCarryPrefix(t *testing.T) {
	tests := []struct {
		gen    func() string
		prefix string
	}{
		{NewDrawingID, PrefixDrawing},
		{NewSnapshotID, PrefixSnapshot},
		{NewSessionID, PrefixSession},
		{NewExportID, PrefixExport},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			id := tt.gen()
			assert.True(t, strings.HasPrefix(id, tt.prefix+"_"))
			assert.NoError(t, Validate(id, tt.prefix))
		})
	}
}

func TestValidate(t *testing.T) {
	assert.Error(t, Validate(NewDrawingID(), PrefixSession))
	assert.Error(t, Validate("not an id", PrefixDrawing))
	assert.NotEqual(t, NewDrawingID(), NewDrawingID())
}

package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnescapeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"DATA", "DATA"},
		{`My\x20Backup`, "My Backup"},
		{`a\x2fb`, "a/b"},
		{`trailing\x`, `trailing\x`},
		{`bad\xzz`, `bad\xzz`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, unescapeTag(tt.in))
		})
	}
}

func TestDevDiskRegistryRefCounting(t *testing.T) {
	r := &devDiskRegistry{}
	r.refs = 1
	r.byUUID = map[string]string{"/dev/sda1": "1234-ABCD"}
	r.byLabel = map[string]string{"/dev/sda1": "DATA"}

	uuid, label := r.lookup("/dev/sda1")
	assert.Equal(t, "1234-ABCD", uuid)
	assert.Equal(t, "DATA", label)

	uuid, label = r.lookup("/dev/sdb1")
	assert.Empty(t, uuid)
	assert.Empty(t, label)

	// Dropping the last reference discards the cache so the next opener
	// rescans.
	r.release()
	assert.Nil(t, r.byUUID)
	assert.Nil(t, r.byLabel)

	// Releasing an unopened registry must not underflow.
	r.release()
	assert.Equal(t, 0, r.refs)
}

package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-l", "debug"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "flag with equals",
			args:    []string{"-config=alt.json", "-d", "lab.db"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag without value at end is kept",
			args:    []string{"-d"},
			allowed: []string{"-d"},
			want:    []string{"-d"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-c", "-d=lab.db"},
			allowed: []string{"-c", "-d"},
			want:    []string{"-c", "-d=lab.db"},
		},
		{
			name:    "repeated flag preserved in order",
			args:    []string{"-d", "one.db", "-d", "two.db"},
			allowed: []string{"-d"},
			want:    []string{"-d", "one.db", "-d", "two.db"},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	assert.Equal(t, "/path/short.json", JsonConfigFlags([]string{"-c", "/path/short.json"}))
	assert.Equal(t, "/path/long.json", JsonConfigFlags([]string{"-d", "x.db", "-config", "/path/long.json"}))
	assert.Empty(t, JsonConfigFlags([]string{"-x", "1"}))
	assert.Equal(t, "/path/2.json", JsonConfigFlags([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
}

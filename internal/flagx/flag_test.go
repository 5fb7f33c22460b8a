package flagx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "qdrive.yaml", "-a", ":8080"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "qdrive.yaml"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"-config=alt.json", "-a", ":8080"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept",
			args:         []string{"-s"},
			allowedFlags: []string{"-s"},
			want:         []string{"-s"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-d", "-notvalue"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d"},
		},
		{
			name:         "multiple allowed flags keep order",
			args:         []string{"-a", ":8080", "-x", "y", "-d", "postgres://db", "-e", "production"},
			allowedFlags: []string{"-a", "-d", "-e"},
			want:         []string{"-a", ":8080", "-d", "postgres://db", "-e", "production"},
		},
		{
			name:         "repeated flag preserved",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	t.Run("short -c", func(t *testing.T) {
		assert.Equal(t, "/etc/qdrive.yaml", ConfigFileFlag([]string{"-c", "/etc/qdrive.yaml"}))
	})

	t.Run("long -config", func(t *testing.T) {
		assert.Equal(t, "/etc/qdrive.json", ConfigFileFlag([]string{"-config", "/etc/qdrive.json"}))
	})

	t.Run("equals form", func(t *testing.T) {
		assert.Equal(t, "cfg.yml", ConfigFileFlag([]string{"-a", ":9000", "-config=cfg.yml"}))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Empty(t, ConfigFileFlag([]string{"-a", ":9000", "-s", "secret"}))
	})

	t.Run("last wins", func(t *testing.T) {
		assert.Equal(t, "2.json", ConfigFileFlag([]string{"-c", "1.json", "-config", "2.json"}))
	})
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/calebcase/oops"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	full := Config{
		Precision:      9,
		HeapPages:      2,
		HeapLimitPages: 4,
		LogLevel:       "debug",
		Development:    true,
	}

	partial := Default()
	partial.Precision = 3

	type TC struct {
		file string
		cfg  Config
		err  bool
		Mark error
	}

	tcs := []TC{
		{file: "full.toml", cfg: full, Mark: oops.New("unexpected")},
		{file: "full.yaml", cfg: full, Mark: oops.New("unexpected")},
		{file: "partial.toml", cfg: partial, Mark: oops.New("unexpected")},
		{file: "bad-limit.yml", err: true, Mark: oops.New("unexpected")},
		{file: "bad-precision.toml", err: true, Mark: oops.New("unexpected")},
		{file: "broken.toml", err: true, Mark: oops.New("unexpected")},
		{file: "missing.toml", err: true, Mark: oops.New("unexpected")},
		{file: "missing.yaml", err: true, Mark: oops.New("unexpected")},
		{file: "config.json", err: true, Mark: oops.New("unexpected")},
	}

	for _, tc := range tcs {
		tc := tc

		t.Run(tc.file, func(t *testing.T) {
			cfg, err := Load(filepath.Join("testdata", tc.file))
			if tc.err {
				require.Error(t, err, tc.Mark)
				require.True(t, Error.Has(err), tc.Mark)

				return
			}

			require.NoError(t, err, tc.Mark)
			require.Equal(t, tc.cfg, cfg, tc.Mark)
		})
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	cfg := Default()
	cfg.Precision = -1
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.HeapPages = 0
	require.Error(t, cfg.Validate())
}

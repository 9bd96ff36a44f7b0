// SPDX-License-Identifier: AGPL-3.0-only

package loader

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Check(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/configs/sample.yaml", []byte("sample: file\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/configs/upper.YML", []byte("sample: file\n"), 0644))
	require.NoError(t, fs.MkdirAll("/configs/dir.yaml", 0755))

	tests := []struct {
		name        string
		path        string
		expectedErr error
		expectedMsg string
	}{
		{
			name: "existing yaml file",
			path: "/configs/sample.yaml",
		},
		{
			name: "extension compared case-insensitively",
			path: "/configs/upper.YML",
		},
		{
			name:        "no extension",
			path:        "/configs/sample",
			expectedErr: ErrNoExtension,
			expectedMsg: "/configs/sample with no extension",
		},
		{
			name:        "dot file has no extension",
			path:        "/configs/.yaml",
			expectedErr: ErrNoExtension,
		},
		{
			name:        "wrong extension",
			path:        "/configs/sample.json",
			expectedErr: ErrWrongExtension,
			expectedMsg: "/configs/sample.json with wrong extension",
		},
		{
			name:        "missing file",
			path:        "/configs/missing.yml",
			expectedErr: ErrNotExist,
			expectedMsg: "/configs/missing.yml not exists",
		},
		{
			name:        "directory",
			path:        "/configs/dir.yaml",
			expectedErr: ErrNotExist,
		},
	}

	l := New(fs, nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := l.Check(tc.path)
			if tc.expectedErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tc.expectedErr)
			if tc.expectedMsg != "" {
				assert.EqualError(t, err, tc.expectedMsg)
			}
		})
	}
}

func TestLoader_CustomExtensions(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "cloud-config.cfg", []byte("hostname: box\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "sample.yaml", []byte("hostname: box\n"), 0644))

	l := New(fs, []string{".CFG"})
	require.NoError(t, l.Check("cloud-config.cfg"))
	require.ErrorIs(t, l.Check("sample.yaml"), ErrWrongExtension)
}

func TestLoader_Load(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "sample.yaml", []byte("---\nsample: file\r\nlist:\n    item 1"), 0644))

	lines, err := New(fs, DefaultExtensions).Load("sample.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"---\n", "sample: file\r\n", "list:\n", "    item 1"}, lines)

	_, err = New(fs, DefaultExtensions).Load("missing.yaml")
	require.ErrorIs(t, err, ErrNotExist)
}

func TestReadLines(t *testing.T) {
	tests := map[string][]string{
		"":         nil,
		"\n":       {"\n"},
		"a\nb\n":   {"a\n", "b\n"},
		"a\n\nb":   {"a\n", "\n", "b"},
		"no break": {"no break"},
	}

	for input, expected := range tests {
		lines, err := ReadLines(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, expected, lines, "input: %q", input)
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/grahms/canonform"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), logs.String(), err
}

func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "person.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: string\nborn: date\ntags: [string]\n"), 0o600))
	return path
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		want    string
		wantErr error
	}{
		{
			name: "json lenient by default",
			args: []string{"stringify", `{when: new Date(0), a: 1, f: () => 1, n: null}`},
			want: `{"a":1,"when":"1970-01-01T00:00:00.000Z"}` + "\n",
		},
		{
			name:    "json strict rejects null",
			args:    []string{"stringify", "--strictness", "strict", `{n: null}`},
			wantErr: canonform.ErrNullNotConvertible,
		},
		{
			name:    "qso rejects embedded structures by default",
			args:    []string{"stringify", "--form", "qso", `{tags: ["a", [1]]}`},
			wantErr: canonform.ErrEmbeddedStructureNotAllowed,
		},
		{
			name: "qso normalize drops them",
			args: []string{"stringify", "--form", "qso", "--strictness", "normalize", `{tags: ["a", 2, null, [1]], b: true}`},
			want: `{"b":"true","tags":["a","2"]}` + "\n",
		},
		{
			name:  "expression from stdin",
			args:  []string{"stringify", "--form", "pso", "-"},
			stdin: `{o: {k: /x+/}}`,
			want:  `{"o":{"k":"x+"}}` + "\n",
		},
		{
			name:    "pso rejects sequences",
			args:    []string{"stringify", "--form", "pso", `{a: [1]}`},
			wantErr: canonform.ErrSequenceNotAllowed,
		},
		{
			name:    "strictness of another form",
			args:    []string{"stringify", "--form", "pso", "--strictness", "normalize", `{}`},
			wantErr: canonform.ErrInvalidStrictness,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.stdin, tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestStringifyYAML(t *testing.T) {
	out, _, err := run(t, "", "stringify", "--form", "pso", "--output", "yaml", `{n: 1, nested: {a: "x"}}`)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, map[string]any{"n": "1", "nested": map[string]any{"a": "x"}}, doc)
}

func TestStringifyLogsDrops(t *testing.T) {
	_, logs, err := run(t, "", "--loglevel", "debug", "--logformat", "json", "stringify", `{a: undefined}`)
	require.NoError(t, err)
	var entry map[string]any
	for line := range strings.Lines(logs) {
		var e map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		if e["msg"] == "dropped value" {
			entry = e
		}
	}
	require.NotNil(t, entry, "no drop logged in %s", logs)
	assert.Equal(t, "$.a", entry["path"])
	assert.Equal(t, "json", entry["form"])
}

func TestParse(t *testing.T) {
	path := writeSchema(t)

	out, _, err := run(t, "", "parse", "--schema", path, "--form", "qso",
		`{"name": "Ada", "born": "1815-12-10T00:00:00.000Z", "tags": ["a", "b"]}`)
	require.NoError(t, err)
	assert.Equal(t, `{born: Date(1815-12-10T00:00:00.000Z), name: "Ada", tags: ["a", "b"]}`+"\n", out)

	_, _, err = run(t, "born: nope\n", "parse", "--schema", path, "--form", "pso")
	assert.ErrorIs(t, err, canonform.ErrParseError)

	_, _, err = run(t, "{}", "parse", "--form", "qso")
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	path := writeSchema(t)

	out, _, err := run(t, "", "schema", "--schema", path, "--form", "qso")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "object", doc["type"])
	props := doc["properties"].(map[string]any)
	assert.Equal(t, "date-time", props["born"].(map[string]any)["format"])

	_, _, err = run(t, "", "schema", "--schema", path, "--form", "pso")
	assert.ErrorIs(t, err, canonform.ErrSequenceNotAllowed)
}

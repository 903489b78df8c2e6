package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// OutputStubScript writes "stub" to the argument after -o when present,
// otherwise to the last argument.
const OutputStubScript = `#!/bin/sh
out=""
prev=""
for arg in "$@"; do
	if [ "$prev" = "-o" ]; then
		out="$arg"
	fi
	prev="$arg"
done
if [ -z "$out" ]; then
	out="$prev"
fi
printf stub > "$out"
`

// FailingStubScript exits with status 3 after writing to stderr.
const FailingStubScript = "#!/bin/sh\necho 'stub failure' >&2\nexit 3\n"

// WriteStub writes an executable script named name into dir.
func WriteStub(t testing.TB, dir, name, script string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

// PrependPath puts dir in front of PATH for the duration of the test.
func PrependPath(t testing.TB, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// IsolatePath replaces PATH with dir only, so nothing else resolves.
func IsolatePath(t testing.TB, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	t.Setenv("PATH", dir)
}

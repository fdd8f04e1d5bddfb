package testutils

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// BuildFakeMystem compiles tests/fixtures/fakemystem into a temp directory and
// returns the path of the binary. The test is skipped when no Go toolchain is
// available to build it.
func BuildFakeMystem(t *testing.T) string {
	t.Helper()
	return buildFixture(t, "fakemystem")
}

func buildFixture(t *testing.T, name string) string {
	t.Helper()

	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not available to build fixture")
	}

	root := projectRoot(t)
	sourcePath := filepath.Join(root, "tests", "fixtures", name)

	exeName := name
	if runtime.GOOS == "windows" {
		exeName += ".exe"
	}
	destPath := filepath.Join(t.TempDir(), exeName)

	cmd := exec.Command(goBin, "build", "-o", destPath, ".")
	cmd.Dir = sourcePath
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "Failed to build fixture %s: %s", name, string(out))

	return destPath
}

// projectRoot walks up from the working directory to the directory holding go.mod.
func projectRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)

	root := wd
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root
		}
		parent := filepath.Dir(root)
		if parent == root {
			t.Fatal("could not find project root (go.mod)")
		}
		root = parent
	}
}

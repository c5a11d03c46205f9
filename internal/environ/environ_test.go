package environ

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSystem records environment changes in memory.
type fakeSystem struct {
	env      map[string]string
	dir      string
	chdirErr error
}

func (s *fakeSystem) Getenv(key string) string { return s.env[key] }

func (s *fakeSystem) Setenv(key, value string) error {
	s.env[key] = value
	return nil
}

func (s *fakeSystem) Chdir(dir string) error {
	if s.chdirErr != nil {
		return s.chdirErr
	}
	s.dir = dir
	return nil
}

func TestApplyPrependsBinDirAndChangesDirectory(t *testing.T) {
	sep := string(os.PathListSeparator)
	sys := &fakeSystem{env: map[string]string{PathVar: "/usr/bin" + sep + "/bin"}}
	c := &Configurator{Sys: sys}

	bin := filepath.Join("/home/u/chevah", "mingw", "git", "bin")
	require.NoError(t, c.Apply("/home/u/chevah", bin))

	assert.Equal(t, bin+sep+"/usr/bin"+sep+"/bin", sys.env[PathVar])
	assert.Equal(t, "/home/u/chevah", sys.dir)

	// A second run does not stack another copy.
	require.NoError(t, c.Apply("/home/u/chevah", bin))
	assert.Equal(t, bin+sep+"/usr/bin"+sep+"/bin", sys.env[PathVar])
}

func TestApplyChdirFailure(t *testing.T) {
	sys := &fakeSystem{env: map[string]string{}, chdirErr: errors.New("no such directory")}

	err := (&Configurator{Sys: sys}).Apply("/missing", "/missing/bin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/missing")
}

func TestPrependPath(t *testing.T) {
	sep := string(os.PathListSeparator)
	assert.Equal(t, "/opt/bin", PrependPath("", "/opt/bin"))
	assert.Equal(t, "/opt/bin"+sep+"/usr/bin", PrependPath("/usr/bin", "/opt/bin"))
	assert.Equal(t, "/opt/bin/"+sep+"/usr/bin", PrependPath("/opt/bin/"+sep+"/usr/bin", "/opt/bin"))
	// Only the first entry counts: a later copy still gets the dir moved to the front.
	assert.Equal(t, "/opt/bin"+sep+"/usr/bin"+sep+"/opt/bin", PrependPath("/usr/bin"+sep+"/opt/bin", "/opt/bin"))
}

func TestRealSystemApply(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(PathVar, "/usr/bin")

	root := t.TempDir()
	bin := filepath.Join(root, "mingw", "git", "bin")
	require.NoError(t, New().Apply(root, bin))

	assert.Equal(t, bin+string(os.PathListSeparator)+"/usr/bin", os.Getenv(PathVar))
	got, err := os.Getwd()
	require.NoError(t, err)
	gotEval, _ := filepath.EvalSymlinks(got)
	rootEval, _ := filepath.EvalSymlinks(root)
	assert.Equal(t, rootEval, gotEval)
}

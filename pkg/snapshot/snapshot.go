package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// UpdateEnv rewrites every snapshot instead of comparing when set to "1"
const UpdateEnv = "RTB_UPDATE_SNAPSHOTS"

var (
	funcCount     = make(map[string]int)
	funcCountLock sync.Mutex
)

// ValidateSnapshot compares obj, as indented JSON, to testdata/<func>-<call>.json
// A missing snapshot file is written and the check passes
func ValidateSnapshot(t *testing.T, obj interface{}, depth int, msgAndArgs ...interface{}) {
	t.Helper()

	filename := snapshotFilename(2 + depth)

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatal(err)
	}

	expects, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			write(t, filename, objJSON)
			return
		}

		t.Fatal(err)
	}

	if os.Getenv(UpdateEnv) == "1" {
		write(t, filename, objJSON)
		return
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s, run with %s=1 to update", filename, UpdateEnv)
	}
}

// snapshotFilename names the file after the calling test and how many snapshots it has taken
func snapshotFilename(skip int) string {
	pc, _, _, _ := runtime.Caller(skip)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	funcCountLock.Lock()
	call := funcCount[funcName]
	funcCount[funcName] = call + 1
	funcCountLock.Unlock()

	return filepath.Join("testdata", fmt.Sprintf("%s-%d.json", funcName, call))
}

func write(t *testing.T, filename string, objJSON []byte) {
	t.Helper()

	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filename, append(objJSON, '\n'), 0o644); err != nil {
		t.Fatal(err)
	}
}

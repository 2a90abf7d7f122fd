package terms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	require.Empty(t, m)
}

func TestLoadAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Economic":"经济","Hand Management":"手牌管理"}`), 0o644))

	m, err := Load(path)
	require.NoError(t, err)

	out := m.Apply([]string{"Economic", "Hand Management", "Animals"})
	require.Equal(t, []string{"经济", "手牌管理", "Animals"}, out)
}

func TestApplyEmptyInput(t *testing.T) {
	m := Map{"Economic": "经济"}
	require.Nil(t, m.Apply(nil))
	require.Nil(t, m.Apply([]string{}))
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.json")
	require.NoError(t, os.WriteFile(path, []byte("["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

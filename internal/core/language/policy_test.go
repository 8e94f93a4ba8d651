// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/learnpath/internal/core/language"
)

func TestLoadPolicy_Default(t *testing.T) {
	policy, err := language.LoadPolicy("", "NB")
	require.NoError(t, err)

	assert.Equal(t, "nb", policy.Fallback)
	assert.Equal(t, []string{language.GroupTitle, language.GroupDescription}, policy.Parity[language.KindLearningPath])
}

func TestLoadPolicy_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
fallback: en
parity:
  learningpath: [title, description, introduction]
  learningstep: [title, description]
`), 0o600))

	policy, err := language.LoadPolicy(path, "nb")
	require.NoError(t, err)

	assert.Equal(t, "en", policy.Fallback)
	assert.Len(t, policy.Parity[language.KindLearningPath], 3)
	assert.Equal(t, []string{"title", "description"}, policy.Parity[language.KindLearningStep])
}

func TestParsePolicy_Errors(t *testing.T) {
	_, err := language.ParsePolicy([]byte("parity:\n  learningpath: [subtitle]\n"), "nb")
	assert.ErrorContains(t, err, "unknown field group")

	_, err = language.ParsePolicy([]byte("fallback: '*'\n"), "nb")
	assert.Error(t, err)

	_, err = language.ParsePolicy([]byte("parity: [oops"), "nb")
	assert.Error(t, err)

	_, err = language.LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml"), "nb")
	assert.Error(t, err)
}

func TestParsePolicy_UsesFallbackArgument(t *testing.T) {
	policy, err := language.ParsePolicy([]byte("parity: {}\n"), "nn")
	require.NoError(t, err)
	assert.Equal(t, "nn", policy.Fallback)
	assert.Empty(t, policy.Parity)
}

func TestLoadPolicy_ShippedFileMatchesDefault(t *testing.T) {
	shipped, err := language.LoadPolicy(filepath.Join("..", "..", "..", "data", "config", "language_policy.yaml"), "en")
	require.NoError(t, err)

	builtin, err := language.LoadPolicy("", "nb")
	require.NoError(t, err)

	assert.Equal(t, builtin.Fallback, shipped.Fallback)
	assert.Equal(t, builtin.Parity[language.KindLearningPath], shipped.Parity[language.KindLearningPath])
	assert.Empty(t, shipped.Parity[language.KindLearningStep])
}

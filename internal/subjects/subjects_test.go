package subjects_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prbarprep/barprep-go/internal/prompts"
	"github.com/prbarprep/barprep-go/internal/subjects"
)

func TestAllContainsThirteenSubjects(t *testing.T) {
	all := subjects.All()
	require.Len(t, all, 13)

	seen := map[string]struct{}{}
	for _, code := range all {
		require.True(t, subjects.Valid(code), "code %q should be valid", code)
		require.NotEqual(t, code, subjects.Name(code), "code %q should have a display label", code)
		seen[code] = struct{}{}
	}
	require.Len(t, seen, 13)
}

func TestUnknownCodeFallsBackToItself(t *testing.T) {
	require.False(t, subjects.Valid("mercantil"))
	require.Equal(t, "mercantil", subjects.Name("mercantil"))
}

func TestEverySubjectHasPrompts(t *testing.T) {
	for _, code := range subjects.All() {
		entries := prompts.ForSubject(code)
		require.NotEmpty(t, entries, "subject %q should ship with essay prompts", code)

		first, ok := prompts.Default(code)
		require.True(t, ok)
		require.Equal(t, entries[0], first)
	}
}

func TestUnknownSubjectYieldsExplicitEmptyPromptList(t *testing.T) {
	entries := prompts.ForSubject("mercantil")
	require.NotNil(t, entries)
	require.Empty(t, entries)

	_, ok := prompts.Default("mercantil")
	require.False(t, ok)
}

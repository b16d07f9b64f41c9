package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredentialStore struct {
	values map[string]string
}

func (f *fakeCredentialStore) Credential(name string) (string, error) {
	return f.values[name], nil
}

func (f *fakeCredentialStore) SetCredential(name, value string) error {
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[name] = value
	return nil
}

func TestResolveCredential(t *testing.T) {
	t.Run("environment wins and is persisted", func(t *testing.T) {
		t.Setenv("TEST_API_KEY", "from-env")
		store := &fakeCredentialStore{values: map[string]string{"TEST_API_KEY": "from-store"}}

		got := ResolveCredential(store, "TEST_API_KEY")
		assert.Equal(t, "from-env", got)
		assert.Equal(t, "from-env", store.values["TEST_API_KEY"], "env value persisted for later runs")
	})

	t.Run("falls back to stored value", func(t *testing.T) {
		t.Setenv("TEST_API_KEY", "")
		store := &fakeCredentialStore{values: map[string]string{"TEST_API_KEY": "from-store"}}

		assert.Equal(t, "from-store", ResolveCredential(store, "TEST_API_KEY"))
	})

	t.Run("empty when neither is set", func(t *testing.T) {
		t.Setenv("TEST_API_KEY", "")
		assert.Empty(t, ResolveCredential(&fakeCredentialStore{}, "TEST_API_KEY"))
	})

	t.Run("nil store reads environment only", func(t *testing.T) {
		t.Setenv("TEST_API_KEY", "from-env")
		assert.Equal(t, "from-env", ResolveCredential(nil, "TEST_API_KEY"))
	})
}

func TestRequired(t *testing.T) {
	lookup := func(values map[string]string) func(string) string {
		return func(name string) string { return values[name] }
	}

	t.Run("all present", func(t *testing.T) {
		missing := Required(lookup(map[string]string{
			"GOOGLE_VISION_API_KEY": "a",
			"OPENAI_API_KEY":        "b",
		}))
		assert.Empty(t, missing)
	})

	t.Run("gemini alone satisfies the llm requirement", func(t *testing.T) {
		missing := Required(lookup(map[string]string{
			"GOOGLE_VISION_API_KEY": "a",
			"GEMINI_API_KEY":        "c",
		}))
		assert.Empty(t, missing)
	})

	t.Run("everything missing", func(t *testing.T) {
		missing := Required(lookup(nil))
		require.Len(t, missing, 2)
		assert.Contains(t, missing, "GOOGLE_VISION_API_KEY")
		assert.Contains(t, missing, "OPENAI_API_KEY or GEMINI_API_KEY")
	})
}

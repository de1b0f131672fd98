package credstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_FileStore_roundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	store, err := NewFileStore("Ripota")
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}

	// empty before anything is saved
	token, err := store.Load()
	assert.NoError(t, err)
	assert.Empty(t, token)

	assert.NoError(t, store.Save("tok-42"))

	// a fresh store sees the saved token (survives "restart")
	store2, err := NewFileStore("Ripota")
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}
	token, err = store2.Load()
	assert.NoError(t, err)
	assert.Equal(t, "tok-42", token)

	assert.NoError(t, store.Clear())
	token, err = store.Load()
	assert.NoError(t, err)
	assert.Empty(t, token)

	// clearing an already empty store is not an error
	assert.NoError(t, store.Clear())
}

package fst

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pathfst/errs"
)

func TestBuilder_InsertGet(t *testing.T) {
	b := NewBuilder()

	// Case 1: no shared prefix with any existing edge.
	b.Insert([]byte("usr/bin/ls"), 1)
	b.Insert([]byte("etc/hosts"), 2)

	// Case 2: existing edge is a prefix of the key.
	b.Insert([]byte("usr/bin/ls.1"), 3)

	// Case 3: strict partial common prefix forces an edge split.
	b.Insert([]byte("usr/bin/cat"), 4)

	require.Equal(t, 4, b.Len())

	for key, want := range map[string]uint64{
		"usr/bin/ls":   1,
		"etc/hosts":    2,
		"usr/bin/ls.1": 3,
		"usr/bin/cat":  4,
	} {
		got, ok := b.Get([]byte(key))
		require.True(t, ok, "key %q", key)
		require.Equal(t, want, got, "key %q", key)
	}

	// Interior split points are not keys.
	for _, key := range []string{"usr/bin/", "usr/bin/ls.", "usr", "", "usr/bin/lsx"} {
		_, ok := b.Get([]byte(key))
		require.False(t, ok, "key %q", key)
	}
}

func TestBuilder_Overwrite(t *testing.T) {
	b := NewBuilder()

	b.Insert([]byte("a/b"), 1)
	b.Insert([]byte("a/b"), 2)

	require.Equal(t, 1, b.Len())

	got, ok := b.Get([]byte("a/b"))
	require.True(t, ok)
	require.Equal(t, uint64(2), got)
}

func TestBuilder_IdempotentInsert(t *testing.T) {
	b1 := NewBuilder()
	b1.Insert([]byte("x/y"), 7)

	b2 := NewBuilder()
	b2.Insert([]byte("x/y"), 7)
	b2.Insert([]byte("x/y"), 7)

	require.Equal(t, b1.Len(), b2.Len())

	data1, err := b1.Build()
	require.NoError(t, err)
	data2, err := b2.Build()
	require.NoError(t, err)
	require.Equal(t, data1, data2)
}

func TestBuilder_EmptyKey(t *testing.T) {
	b := NewBuilder()

	b.Insert(nil, 42)
	require.Equal(t, 1, b.Len())

	got, ok := b.Get(nil)
	require.True(t, ok)
	require.Equal(t, uint64(42), got)

	b.Insert([]byte("a"), 1)

	got, ok = b.Get([]byte{})
	require.True(t, ok)
	require.Equal(t, uint64(42), got)
}

func TestBuilder_KeyPrefixOfAnother(t *testing.T) {
	b := NewBuilder()

	// Shorter key first, then extended.
	b.Insert([]byte("a"), 1)
	b.Insert([]byte("a/b"), 2)

	// Longer key first, then its prefix.
	b.Insert([]byte("x/y/z"), 3)
	b.Insert([]byte("x/y"), 4)

	require.Equal(t, 4, b.Len())

	for key, want := range map[string]uint64{
		"a": 1, "a/b": 2, "x/y/z": 3, "x/y": 4,
	} {
		got, ok := b.Get([]byte(key))
		require.True(t, ok, "key %q", key)
		require.Equal(t, want, got, "key %q", key)
	}
}

func TestBuilder_KeyBytesCopied(t *testing.T) {
	b := NewBuilder()

	key := []byte("shared/buffer")
	b.Insert(key, 1)
	key[0] = 'X'

	_, ok := b.Get(key)
	require.False(t, ok)

	got, ok := b.Get([]byte("shared/buffer"))
	require.True(t, ok)
	require.Equal(t, uint64(1), got)
}

func TestBuilder_All_SortedAndRestartable(t *testing.T) {
	b := NewBuilder()

	keys := []string{"b", "a/c", "a/b", "ab", "", "a"}
	for i, k := range keys {
		b.Insert([]byte(k), uint64(i))
	}

	want := []string{"", "a", "a/b", "a/c", "ab", "b"}

	for round := 0; round < 2; round++ {
		var got []string
		for key, output := range b.All() {
			got = append(got, string(key))

			wantOut, ok := b.Get(key)
			require.True(t, ok)
			require.Equal(t, wantOut, output)
		}
		require.Equal(t, want, got)
	}
}

func TestBuilder_All_EarlyStop(t *testing.T) {
	b := NewBuilder()
	for _, k := range []string{"a", "b", "c"} {
		b.Insert([]byte(k), 0)
	}

	count := 0
	for range b.All() {
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)
}

func TestBuilder_InsertionOrderInvariance(t *testing.T) {
	keys := []string{
		"", "a", "a/b", "a/b/c", "a/c", "ab", "abc", "b",
		"usr/bin/ls", "usr/bin/cat", "usr/lib", "usr/share/doc",
		"var/log/syslog", "var/log/messages", "var/run",
	}

	reference := NewBuilder()
	for i, k := range keys {
		reference.Insert([]byte(k), uint64(i))
	}
	refData, err := reference.Build()
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		order := rng.Perm(len(keys))

		b := NewBuilder()
		for _, i := range order {
			b.Insert([]byte(keys[i]), uint64(i))
		}

		data, err := b.Build()
		require.NoError(t, err)
		require.Equal(t, refData, data, "trial %d order %v", trial, order)
	}
}

func TestBuilder_Build_NoKeys(t *testing.T) {
	b := NewBuilder()

	_, err := b.Build()
	require.ErrorIs(t, err, errs.ErrNoKeysAdded)
}

func TestBuilder_Build_Snapshot(t *testing.T) {
	b := NewBuilder()
	b.Insert([]byte("a"), 1)

	data1, err := b.Build()
	require.NoError(t, err)

	// The builder stays usable; rebuilding without changes is deterministic.
	data2, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, data1, data2)

	b.Insert([]byte("b"), 2)
	data3, err := b.Build()
	require.NoError(t, err)
	require.NotEqual(t, data1, data3)
}

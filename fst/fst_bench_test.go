package fst

import (
	"fmt"
	"testing"

	"github.com/arloliu/pathfst/format"
)

func benchKeys(n int) [][]byte {
	keys := make([][]byte, n)
	for i := 0; i < n; i++ {
		keys[i] = []byte(fmt.Sprintf("common/prefix/dir%03d/file%04d.dat", i%37, i))
	}

	return keys
}

func benchFst(b *testing.B, n int) (*Fst, [][]byte) {
	b.Helper()

	keys := benchKeys(n)
	builder := NewBuilder()
	for i, key := range keys {
		builder.Insert(key, uint64(i))
	}

	data, err := builder.Build()
	if err != nil {
		b.Fatal(err)
	}

	f, err := Open(data)
	if err != nil {
		b.Fatal(err)
	}

	return f, keys
}

func BenchmarkBuilder_Insert(b *testing.B) {
	keys := benchKeys(10000)

	b.ResetTimer()
	i := 0
	for b.Loop() {
		builder := NewBuilder()
		for _, key := range keys {
			builder.Insert(key, uint64(i))
		}
		i++
	}
}

func BenchmarkBuilder_Build(b *testing.B) {
	keys := benchKeys(10000)
	builder := NewBuilder()
	for i, key := range keys {
		builder.Insert(key, uint64(i))
	}

	b.ResetTimer()
	for b.Loop() {
		if _, err := builder.Build(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuilder_Build_Zstd(b *testing.B) {
	keys := benchKeys(10000)
	builder := NewBuilder()
	for i, key := range keys {
		builder.Insert(key, uint64(i))
	}

	b.ResetTimer()
	for b.Loop() {
		if _, err := builder.Build(WithCompression(format.CompressionZstd)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFst_Get(b *testing.B) {
	f, keys := benchFst(b, 10000)

	b.ResetTimer()
	i := 0
	for b.Loop() {
		f.Get(keys[i%len(keys)])
		i++
	}
}

func BenchmarkFst_Prefix(b *testing.B) {
	f, _ := benchFst(b, 10000)
	prefix := []byte("common/prefix/dir005/")

	b.ResetTimer()
	for b.Loop() {
		for range f.Prefix(prefix) {
		}
	}
}

func BenchmarkFst_All(b *testing.B) {
	f, _ := benchFst(b, 10000)

	b.ResetTimer()
	for b.Loop() {
		for range f.All() {
		}
	}
}

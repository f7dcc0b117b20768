package cache

import (
	"testing"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "artworks page",
			key:  Key{Endpoint: "/artworks", Page: 2, Limit: 12},
			want: "catalog:artworks:page=2:limit=12",
		},
		{
			name: "trailing slash normalized",
			key:  Key{Endpoint: "/artworks/", Page: 1, Limit: 12},
			want: "catalog:artworks:page=1:limit=12",
		},
		{
			name: "empty endpoint",
			key:  Key{Endpoint: "", Page: 3, Limit: 50},
			want: "catalog:page=3:limit=50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyStringDeterministic(t *testing.T) {
	key := Key{Endpoint: "/artworks", Page: 7, Limit: 12}

	first := key.String()
	for i := 0; i < 10; i++ {
		if got := key.String(); got != first {
			t.Fatalf("Key.String() not deterministic: %q != %q", got, first)
		}
	}
}

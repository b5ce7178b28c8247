package picture

import (
	"errors"
	"reflect"
	"testing"
)

func TestAttributes_CheckReserved(t *testing.T) {
	tests := []struct {
		name     string
		attrs    Attributes
		reserved []string
		wantErr  bool
	}{
		{
			name:     "nil attributes",
			attrs:    nil,
			reserved: ReservedImageKeys,
		},
		{
			name:     "harmless attributes",
			attrs:    Attributes{"loading": "lazy", "class": "hero"},
			reserved: ReservedImageKeys,
		},
		{
			name:     "src is reserved for img",
			attrs:    Attributes{"src": "/evil.jpg"},
			reserved: ReservedImageKeys,
			wantErr:  true,
		},
		{
			name:     "reserved check is case insensitive",
			attrs:    Attributes{"SRC": "/evil.jpg"},
			reserved: ReservedImageKeys,
			wantErr:  true,
		},
		{
			name:     "href is reserved for links",
			attrs:    Attributes{"href": "/evil", "rel": "noopener"},
			reserved: ReservedLinkKeys,
			wantErr:  true,
		},
		{
			name:     "width reserved for img but fine for links",
			attrs:    Attributes{"width": "10"},
			reserved: ReservedLinkKeys,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.attrs.CheckReserved(tt.reserved)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckReserved() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrReservedAttribute) {
				t.Errorf("CheckReserved() error = %v, want ErrReservedAttribute", err)
			}
		})
	}
}

func TestAttributes_SortedKeys(t *testing.T) {
	attrs := Attributes{"loading": "lazy", "alt": "x", "class": "hero"}

	got := attrs.SortedKeys()
	want := []string{"alt", "class", "loading"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedKeys() = %v, want %v", got, want)
	}
}

package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_DefaultPage(t *testing.T) {
	tests := []struct {
		name       string
		in         PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"vacía", PageRequest{}, defaultPageLimit, 0},
		{"respeta límite válido", PageRequest{Limit: 50, Offset: 10}, 50, 10},
		{"tope máximo", PageRequest{Limit: 1000}, MaxPageLimit, 0},
		{"offset negativo", PageRequest{Limit: 5, Offset: -3}, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.DefaultPage()
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
			assert.Equal(t, PageResponse{Limit: tt.wantLimit, Offset: tt.wantOffset}, p.Response())
		})
	}
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserUpdate_IsEmpty(t *testing.T) {
	email := "john@example.com"
	password := "Secure123"
	blank := ""

	tests := []struct {
		name   string
		update UserUpdate
		want   bool
	}{
		{name: "no fields", update: UserUpdate{}, want: true},
		{name: "blank fields", update: UserUpdate{Email: &blank, Password: &blank}, want: true},
		{name: "email only", update: UserUpdate{Email: &email}, want: false},
		{name: "password only", update: UserUpdate{Password: &password}, want: false},
		{name: "both", update: UserUpdate{Email: &email, Password: &password}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.update.IsEmpty())
		})
	}
}

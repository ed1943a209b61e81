package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserIsOfAge(t *testing.T) {
	tests := []struct {
		age  int
		want bool
	}{
		{age: 0, want: false},
		{age: 10, want: false},
		{age: 17, want: false},
		{age: 18, want: true},
		{age: 50, want: true},
	}
	for _, tt := range tests {
		u := User{ID: 1, Name: "Naruto", Age: tt.age}
		assert.Equal(t, tt.want, u.IsOfAge(), "age %d", tt.age)
	}
}

func TestNewUserResponses(t *testing.T) {
	users := []User{
		{ID: 1, Name: "Naruto", Age: 10},
		{ID: 2, Name: "Sasuke", Age: 18},
		{ID: 3, Name: "Kakashi", Age: 50},
	}

	got := NewUserResponses(users)

	want := []UserResponse{
		{ID: 1, Name: "Naruto", Age: 10, IsOfAge: false},
		{ID: 2, Name: "Sasuke", Age: 18, IsOfAge: true},
		{ID: 3, Name: "Kakashi", Age: 50, IsOfAge: true},
	}
	assert.Equal(t, want, got)
}

func TestNewUserResponsesEmpty(t *testing.T) {
	got := NewUserResponses(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

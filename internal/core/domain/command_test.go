package domain

import (
	"reflect"
	"strings"
	"testing"
)

func TestCommandPolicy_DenyWins(t *testing.T) {
	p := NewCommandPolicy([]string{"ls", "sudo"}, []string{"sudo"})

	if !p.Permitted("ls") {
		t.Fatalf("ls should be permitted")
	}
	if p.Permitted("sudo") {
		t.Fatalf("deny-list must win over allow-list")
	}
	if p.Permitted("rm") {
		t.Fatalf("unlisted command should be rejected")
	}
}

func TestCommandPolicy_AllowedSorted(t *testing.T) {
	p := NewCommandPolicy([]string{"pwd", "cat", "ls", " echo "}, nil)

	want := []string{"cat", "echo", "ls", "pwd"}
	if got := p.Allowed(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestValidUsername(t *testing.T) {
	valid := []string{"abc", "alice", "a1_", "abc_def_123", "a" + strings.Repeat("b", 31)}
	for _, u := range valid {
		if !ValidUsername(u) {
			t.Fatalf("%q should be valid", u)
		}
	}

	invalid := []string{
		"",
		"ab",    // too short
		"Alice", // uppercase start
		"1abc",  // digit start
		"_abc",  // underscore start
		"ab-cd", // dash not allowed
		"a" + strings.Repeat("b", 32), // too long
	}
	for _, u := range invalid {
		if ValidUsername(u) {
			t.Fatalf("%q should be invalid", u)
		}
	}
}

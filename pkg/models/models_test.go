package models

import "testing"

func TestAccountScopeID(t *testing.T) {
	s := AccountScope{Instance: "lemmy.ml", Username: "alice"}
	if s.ID() != "alice@lemmy.ml" {
		t.Fatalf("id = %q", s.ID())
	}
	anon := AccountScope{Instance: "lemmy.ml"}
	if anon.ID() != "anon@lemmy.ml" {
		t.Fatalf("anonymous id = %q", anon.ID())
	}
}

func TestCommentDepth(t *testing.T) {
	cases := []struct {
		path  string
		depth int
	}{
		{"", 0},
		{"0.123", 1},
		{"0.123.789", 2},
	}
	for _, tc := range cases {
		c := Comment{Path: tc.path}
		if got := c.Depth(); got != tc.depth {
			t.Errorf("Depth(%q) = %d, want %d", tc.path, got, tc.depth)
		}
	}
}

func TestVoteStatusNormalize(t *testing.T) {
	if VoteStatus("").Normalize() != VoteNeutral {
		t.Fatalf("zero value should normalize to neutral")
	}
	if VoteUp.Normalize() != VoteUp {
		t.Fatalf("up should be unchanged")
	}
}

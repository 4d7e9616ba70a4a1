package util

import "testing"

func TestPtr(t *testing.T) {
	p := Ptr(false)
	if p == nil || *p {
		t.Errorf("expected pointer to false, got %v", p)
	}

	s := Ptr("hello")
	if *s != "hello" {
		t.Errorf("expected *s=hello, got %s", *s)
	}
}

package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiers(t *testing.T) {
	inv := InvalidArgumentf("parts must be >= 1, got %d", 0)
	nf := &NotFoundError{Path: "/tmp/missing.pdf"}
	ex := &AlreadyExistsError{Path: "/tmp/out.pdf"}

	if !IsInvalidArgument(inv) || IsNotFound(inv) || IsAlreadyExists(inv) {
		t.Errorf("InvalidArgument misclassified")
	}
	if !IsNotFound(nf) || IsInvalidArgument(nf) {
		t.Errorf("NotFound misclassified")
	}
	if !IsAlreadyExists(ex) || IsNotFound(ex) {
		t.Errorf("AlreadyExists misclassified")
	}
}

func TestClassifiersUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("split failed: %w", &AlreadyExistsError{Path: "x.pdf"})
	if !IsAlreadyExists(wrapped) {
		t.Errorf("Expected AlreadyExists through wrapping")
	}
	if IsAlreadyExists(errors.New("plain")) {
		t.Errorf("Plain error misclassified as AlreadyExists")
	}
}

func TestMessages(t *testing.T) {
	if got := (&NotFoundError{Path: "a.pdf"}).Error(); got != "not found: a.pdf" {
		t.Errorf("Unexpected message: %q", got)
	}
	inv := InvalidArgumentf("bad %s", "thing")
	if inv.Error() != "invalid argument: bad thing" {
		t.Errorf("Unexpected message: %q", inv.Error())
	}
}

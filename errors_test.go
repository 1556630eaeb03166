package sntool

import (
	"fmt"
	"testing"

	"github.com/akeil/sntool/internal/errors"
)

func TestErrorPredicates(t *testing.T) {
	err := fmt.Errorf("some error")
	if IsOutOfBounds(err) || IsEncodingError(err) || IsUnknownLayerRole(err) {
		t.Log("plain error is wrongly recognized")
		t.Fail()
	}

	err = errors.Wrap(errors.NewOutOfBounds(10, 4, 8), "page %d", 1)
	if !IsOutOfBounds(err) {
		t.Log("wrapped out of bounds error is not recognized")
		t.Fail()
	}

	err = errors.Wrap(errors.NewUnknownLayerRole("LAYER9"), "layer")
	if !IsUnknownLayerRole(err) {
		t.Log("wrapped unknown layer role is not recognized")
		t.Fail()
	}
}

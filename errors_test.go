package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestErrorCollectionEmpty(t *testing.T) {
	var ec ErrorCollection
	be.Equal(t, false, ec.HasErrors())
	be.Equal(t, 0, ec.Count())
	be.Equal(t, "", ec.String())
	be.Err(t, ec.Err(), nil)
}

func TestErrorCollectionAccumulates(t *testing.T) {
	var ec ErrorCollection
	ec.Add(errors.New("first problem"))
	ec.Addf("second problem with %q", "detail")

	be.True(t, ec.HasErrors())
	be.Equal(t, 2, ec.Count())

	s := ec.String()
	be.True(t, strings.Contains(s, "first problem"))
	be.True(t, strings.Contains(s, `second problem with "detail"`))
	// One diagnostic per line, no trailing newline.
	be.Equal(t, 2, len(strings.Split(s, "\n")))

	err := ec.Err()
	be.True(t, err != nil)
	be.Equal(t, s, err.Error())
}

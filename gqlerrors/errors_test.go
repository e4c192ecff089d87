package gqlerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

func TestFormatErrorNil(t *testing.T) {
	assert.Nil(t, FormatError(nil))
}

func TestFormatErrorPlain(t *testing.T) {
	list := FormatError(errors.New("boom"))

	assert.Len(t, list, 1)
	assert.Equal(t, "boom", list[0].Message)
	assert.Equal(t, UndefinedError, list[0].Extensions["code"])
}

func TestFormatErrorGqlerror(t *testing.T) {
	err := &gqlerror.Error{
		Message: "There can be only one type named \"Product\".",
		Locations: []gqlerror.Location{
			{Line: 2, Column: 5},
		},
	}

	list := FormatError(err)

	assert.Len(t, list, 1)
	assert.Equal(t, CompositionFailedError, list[0].Extensions["code"])
	assert.Equal(t, []Location{{Line: 2, Column: 5}}, list[0].Locations)
}

func TestFormatErrorList(t *testing.T) {
	list := FormatError(gqlerror.List{
		gqlerror.Errorf("first"),
		gqlerror.Errorf("second"),
	})

	assert.Len(t, list, 2)

	nested := FormatError(ErrorList{list[0], list[1]})
	assert.Len(t, nested, 2)
}

func TestExtendErrorList(t *testing.T) {
	var list ErrorList

	list = ExtendErrorList(list, NewErrorf("bad %s", "merge"))
	list = ExtendErrorList(list, errors.New("boom"))

	assert.Len(t, list, 2)
	assert.Equal(t, "bad merge. boom", list.Error())
}

func TestNewError(t *testing.T) {
	err := NewError(CompositionFailedError, errors.New("boom"))

	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, CompositionFailedError, err.Extensions["code"])
}

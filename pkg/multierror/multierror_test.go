//go:build !integration

package multierror

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestReturnNilWhenEmpty(t *testing.T) {
	t.Parallel()

	var errs MultiError
	errs.Add(nil)
	assert.NoError(t, errs.Return())
}

func TestAggregatesInOrder(t *testing.T) {
	t.Parallel()

	var errs MultiError
	errs.Add(errors.New("gedit_45.2-alt1_x86_64: unexpected status 404"))
	errs.Add(nil)
	errs.Add(errors.New("postfix_3.8-alt1_x86_64: connection refused"))

	err := errs.Return()
	assert.Error(t, err)
	assert.Equal(t,
		"gedit_45.2-alt1_x86_64: unexpected status 404\npostfix_3.8-alt1_x86_64: connection refused",
		err.Error())
}

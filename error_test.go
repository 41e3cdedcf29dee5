package webretriever_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/webretriever"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := webretriever.Errorf(webretriever.ENOTFOUND, "collection %q not found", "test")

	assert.Equal(t, webretriever.ENOTFOUND, webretriever.ErrorCode(err))
	assert.Equal(t, "collection \"test\" not found", webretriever.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webretriever.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webretriever.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, webretriever.EINTERNAL, webretriever.ErrorCode(err))
	assert.Equal(t, "Internal error.", webretriever.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("ingest: %w", webretriever.Errorf(webretriever.EINVALID, "bad input"))

	assert.Equal(t, webretriever.EINVALID, webretriever.ErrorCode(err))
	assert.Equal(t, "bad input", webretriever.ErrorMessage(err))
}

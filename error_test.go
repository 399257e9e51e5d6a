package sift_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/sift"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sift.Errorf(sift.ENOTFOUND, "job %q not found", "test")

	assert.Equal(t, sift.ENOTFOUND, sift.ErrorCode(err))
	assert.Equal(t, "job \"test\" not found", sift.ErrorMessage(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, sift.ErrorCode(nil))
		assert.Empty(t, sift.ErrorMessage(nil))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("scrape: %w", sift.Errorf(sift.EINVALID, "bad url"))

		assert.Equal(t, sift.EINVALID, sift.ErrorCode(err))
		assert.Equal(t, "bad url", sift.ErrorMessage(err))
	})

	t.Run("provider error keeps provider message", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("fetch: %w", &sift.ProviderError{StatusCode: 402, Message: "Payment required"})

		assert.Equal(t, sift.EPROVIDER, sift.ErrorCode(err))
		assert.Equal(t, "Payment required", sift.ErrorMessage(err))
	})

	t.Run("provider transport error hides cause", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("dial tcp 127.0.0.1:1: connection refused")
		err := fmt.Errorf("run actor: %w", &sift.ProviderError{StatusCode: 502, Message: "Apify run failed", Err: cause})

		assert.Equal(t, sift.EPROVIDER, sift.ErrorCode(err))
		assert.Equal(t, "Apify run failed", sift.ErrorMessage(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		t.Parallel()

		err := errors.New("boom")

		assert.Equal(t, sift.EINTERNAL, sift.ErrorCode(err))
		assert.Equal(t, "Internal error.", sift.ErrorMessage(err))
	})
}

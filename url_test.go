package sift_test

import (
	"net/netip"
	"testing"

	"github.com/fwojciec/sift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	t.Run("adds https scheme when missing", func(t *testing.T) {
		t.Parallel()

		got, err := sift.NormalizeURL("  example.com/docs ")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/docs", got)
	})

	t.Run("keeps explicit http scheme", func(t *testing.T) {
		t.Parallel()

		got, err := sift.NormalizeURL("http://example.com")
		require.NoError(t, err)
		assert.Equal(t, "http://example.com", got)
	})

	t.Run("allows public IP literal", func(t *testing.T) {
		t.Parallel()

		_, err := sift.NormalizeURL("http://93.184.216.34/")
		require.NoError(t, err)
	})

	rejected := []string{
		"",
		"   ",
		"ftp://example.com/file",
		"http://192.168.1.5/",
		"http://10.0.0.1/admin",
		"http://172.16.4.2",
		"http://127.0.0.1:8080",
		"http://169.254.169.254/latest/meta-data",
		"http://0.0.0.0",
		"http://[::1]/",
		"http://[fd00::1]/",
		"http://localhost:3000",
		"http://api.localhost",
		"http://printer.local",
	}
	for _, raw := range rejected {
		t.Run("rejects "+raw, func(t *testing.T) {
			t.Parallel()

			_, err := sift.NormalizeURL(raw)
			require.Error(t, err)
			assert.Equal(t, sift.EINVALID, sift.ErrorCode(err))
		})
	}
}

func TestIsInternalAddr(t *testing.T) {
	t.Parallel()

	for addr, want := range map[string]bool{
		"127.0.0.1":        true,
		"10.1.2.3":         true,
		"169.254.169.254":  true,
		"::ffff:127.0.0.1": true,
		"fe80::1":          true,
		"0.0.0.0":          true,
		"93.184.216.34":    false,
		"2606:4700::1111":  false,
	} {
		t.Run(addr, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, want, sift.IsInternalAddr(netip.MustParseAddr(addr)))
		})
	}
}

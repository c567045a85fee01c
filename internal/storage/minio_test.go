package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	ts := time.Date(2024, 5, 1, 9, 30, 15, 0, time.UTC)

	assert.Equal(t, "excel/张三_A001_20240501_093015.xlsx", ObjectName("张三", "A001", ts))
}

func TestObjectNameDefaultsSubmitter(t *testing.T) {
	ts := time.Date(2024, 5, 1, 9, 30, 15, 0, time.UTC)

	assert.Equal(t, "excel/unknown_A001_20240501_093015.xlsx", ObjectName("", "A001", ts))
	assert.Equal(t, "excel/unknown_A001_20240501_093015.xlsx", ObjectName("   ", "A001", ts))
}

const listBucketXML = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>expense-reports</Name>
  <Prefix>excel/</Prefix>
  <KeyCount>2</KeyCount>
  <MaxKeys>1000</MaxKeys>
  <IsTruncated>false</IsTruncated>
  <Contents>
    <Key>excel/zhang_A001_20240501_093015.xlsx</Key>
    <LastModified>2024-05-01T09:30:15.000Z</LastModified>
    <ETag>&quot;etag1&quot;</ETag>
    <Size>4096</Size>
    <StorageClass>STANDARD</StorageClass>
  </Contents>
  <Contents>
    <Key>excel/li_A002_20240502_101000.xlsx</Key>
    <LastModified>2024-05-02T10:10:00.000Z</LastModified>
    <ETag>&quot;etag2&quot;</ETag>
    <Size>4096</Size>
    <StorageClass>STANDARD</StorageClass>
  </Contents>
</ListBucketResult>`

func TestListWorkbooks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		if r.URL.Query().Has("location") {
			fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?><LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/"></LocationConstraint>`)
			return
		}
		assert.Equal(t, "excel/", r.URL.Query().Get("prefix"))
		fmt.Fprint(w, listBucketXML)
	}))
	defer srv.Close()

	m, err := NewManager(Config{
		Host:      srv.URL,
		AccessKey: "access",
		SecretKey: "secret",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	names, err := m.ListWorkbooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"excel/zhang_A001_20240501_093015.xlsx",
		"excel/li_A002_20240502_101000.xlsx",
	}, names)
}

package delimited

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/encodings"
)

const sampleCSV = "股票代码,企业名称,年份,数字化转型指数\n" +
	"600008,首创股份,2010,12.345\n" +
	"100,TCL科技,2010,5.0\n"

func defaultCandidates(t *testing.T) []encodings.Encoding {
	t.Helper()
	c, err := encodings.NewRegistry().Resolve(domain.DefaultEncodings)
	require.NoError(t, err)
	return c
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func gbkBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func TestLoader_Extensions(t *testing.T) {
	assert.Equal(t, []string{".csv", ".tsv"}, New(nil).Extensions())
}

func TestLoader_Candidates(t *testing.T) {
	l := New(defaultCandidates(t))

	assert.Equal(t, []string{"utf-8-sig", "gbk", "gb2312", "latin-1"}, l.Candidates())
}

func TestLoader_UTF8WithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sampleCSV)...)
	path := writeFile(t, "index.csv", data)

	raw, err := New(defaultCandidates(t)).Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "utf-8-sig", raw.Encoding)
	assert.Equal(t, domain.FormatCSV, raw.Format)
	assert.Equal(t, path, raw.Path)
	assert.Equal(t, domain.RequiredColumns, raw.Header)
	require.Len(t, raw.Rows, 2)
	assert.Equal(t, []string{"600008", "首创股份", "2010", "12.345"}, raw.Rows[0])
}

func TestLoader_GBKSucceedsOnSecondCandidate(t *testing.T) {
	path := writeFile(t, "index.csv", gbkBytes(t, sampleCSV))

	raw, err := New(defaultCandidates(t)).Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "gbk", raw.Encoding)
	assert.Equal(t, domain.RequiredColumns, raw.Header)
	assert.Equal(t, []string{"100", "TCL科技", "2010", "5.0"}, raw.Rows[1])
}

func TestLoader_SameTableAcrossEncodings(t *testing.T) {
	l := New(defaultCandidates(t))
	bom := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sampleCSV)...)

	fromUTF8, err := l.Load(context.Background(), writeFile(t, "a.csv", bom))
	require.NoError(t, err)
	fromGBK, err := l.Load(context.Background(), writeFile(t, "b.csv", gbkBytes(t, sampleCSV)))
	require.NoError(t, err)

	assert.Equal(t, fromUTF8.Header, fromGBK.Header)
	assert.Equal(t, fromUTF8.Rows, fromGBK.Rows)
}

func TestLoader_CandidateOrderIsHonoured(t *testing.T) {
	path := writeFile(t, "index.csv", []byte(sampleCSV))

	raw, err := New([]encodings.Encoding{encodings.Latin1, encodings.UTF8SIG}).Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "latin-1", raw.Encoding)
	assert.NotEqual(t, domain.ColumnStockCode, raw.Header[0])
}

func TestLoader_EncodingUndetected(t *testing.T) {
	path := writeFile(t, "index.csv", gbkBytes(t, sampleCSV))

	_, err := New([]encodings.Encoding{encodings.UTF8SIG}).Load(context.Background(), path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEncodingUndetected)
	assert.Contains(t, err.Error(), "utf-8-sig")
	assert.Contains(t, err.Error(), "re-save the file as UTF-8")

	var loadErr *domain.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, path, loadErr.Path)
}

func TestLoader_RaggedRowsFailEveryCandidate(t *testing.T) {
	path := writeFile(t, "index.csv", []byte("a,b,c\n1,2\n"))

	_, err := New(defaultCandidates(t)).Load(context.Background(), path)

	assert.ErrorIs(t, err, domain.ErrEncodingUndetected)
	assert.Contains(t, err.Error(), "latin-1")
}

func TestLoader_EmptyFile(t *testing.T) {
	path := writeFile(t, "index.csv", nil)

	_, err := New(defaultCandidates(t)).Load(context.Background(), path)

	assert.ErrorIs(t, err, domain.ErrEncodingUndetected)
	assert.Contains(t, err.Error(), "no header row")
}

func TestLoader_FileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := New(defaultCandidates(t)).Load(context.Background(), path)

	assert.ErrorIs(t, err, domain.ErrFileNotFound)
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestLoader_TabSeparated(t *testing.T) {
	data := "股票代码\t企业名称\t年份\t数字化转型指数\n600008\t首创股份\t2010\t12.345\n"
	path := writeFile(t, "index.tsv", []byte(data))

	raw, err := New(defaultCandidates(t)).Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, domain.RequiredColumns, raw.Header)
	assert.Equal(t, []string{"600008", "首创股份", "2010", "12.345"}, raw.Rows[0])
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(defaultCandidates(t)).Load(ctx, "whatever.csv")

	assert.ErrorIs(t, err, context.Canceled)
}

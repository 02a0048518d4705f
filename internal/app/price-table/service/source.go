package price_table_service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/init-pkg/print-pricing/internal/config"
	"github.com/init-pkg/print-pricing/internal/errs"
)

// rawSource: сырые байты источника и подсказки для определения формата
type rawSource struct {
	body        []byte
	name        string
	contentType string
	query       url.Values
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (this *Service) fetch(ctx context.Context, location string) (*rawSource, error) {
	if isRemote(location) {
		return this.fetchRemote(ctx, location)
	}
	return readLocal(location)
}

func readLocal(location string) (*rawSource, error) {
	p := strings.TrimPrefix(location, "file://")
	body, err := os.ReadFile(p)
	if err != nil {
		return nil, errs.Wrap(errs.KindSourceUnavailable, err, &errs.ErrorOpts{Message: "read price source"})
	}
	return &rawSource{body: body, name: filepath.Base(p)}, nil
}

func (this *Service) fetchRemote(ctx context.Context, location string) (*rawSource, error) {
	location = spreadsheetExportURL(location)

	u, err := url.Parse(location)
	if err != nil {
		return nil, errs.Wrap(errs.KindConfiguration, err, &errs.ErrorOpts{Message: "parse price source url"})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, errs.Wrap(errs.KindConfiguration, err, &errs.ErrorOpts{Message: "build price source request"})
	}

	res, err := this.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.KindSourceUnavailable, err, &errs.ErrorOpts{Message: "fetch price source"})
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errs.Wrap(errs.KindSourceUnavailable, err, &errs.ErrorOpts{Message: "read price source body"})
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &errs.Error{
			Kind:    errs.KindSourceUnavailable,
			Message: "fetch price source",
			Status:  res.StatusCode,
			Detail:  errs.Truncate(string(body), 512),
		}
	}

	contentType, _, _ := mime.ParseMediaType(res.Header.Get("Content-Type"))
	return &rawSource{
		body:        body,
		name:        path.Base(u.Path),
		contentType: contentType,
		query:       u.Query(),
	}, nil
}

// spreadsheetExportURL rewrites a Google Sheets editor link to its xlsx export,
// so every tab stays addressable by name. Other URLs are returned unchanged.
func spreadsheetExportURL(location string) string {
	u, err := url.Parse(location)
	if err != nil || u.Host != "docs.google.com" {
		return location
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	// spreadsheets/d/<id>[/edit|/export|...]
	if len(parts) < 3 || parts[0] != "spreadsheets" || parts[1] != "d" {
		return location
	}
	if len(parts) >= 4 && parts[3] == "export" {
		return location
	}

	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=xlsx", parts[2])
}

var zipMagic = []byte("PK\x03\x04")

// detectFormat picks csv or xlsx: explicit setting, extension, query, content type, magic bytes.
func detectFormat(explicit string, src *rawSource) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}

	switch strings.ToLower(filepath.Ext(src.name)) {
	case ".csv", ".txt":
		return config.FormatCSV
	case ".xlsx", ".xlsm":
		return config.FormatXLSX
	}

	switch strings.ToLower(src.query.Get("format")) {
	case config.FormatCSV:
		return config.FormatCSV
	case config.FormatXLSX:
		return config.FormatXLSX
	}

	switch src.contentType {
	case "text/csv", "text/plain":
		return config.FormatCSV
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return config.FormatXLSX
	}

	if bytes.HasPrefix(src.body, zipMagic) {
		return config.FormatXLSX
	}
	return config.FormatCSV
}

func decode(format string, raw []byte) ([]*sheetGrid, error) {
	var (
		sheets []*sheetGrid
		err    error
	)
	switch format {
	case config.FormatCSV:
		sheets, err = readCSV(raw)
	case config.FormatXLSX:
		sheets, err = readXLSX(raw)
	default:
		return nil, errs.Newf(errs.KindConfiguration, "unsupported price source format %q", format)
	}
	if err != nil {
		return nil, errs.Wrap(errs.KindSourceUnavailable, err, &errs.ErrorOpts{Message: "decode " + format + " price source"})
	}
	return sheets, nil
}

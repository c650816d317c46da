package utils

import (
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/spf13/afero"
)

// IsURL reports whether src looks like an http(s) address rather than a local path.
func IsURL(src string) bool {
	u, err := url.Parse(src)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// DownloadImage fetches the image at uri into a uniquely named file under dir on fs and
// returns its path. The file keeps the extension of the remote path, if any.
func DownloadImage(fs afero.Fs, client *resty.Client, dir, uri string) (string, error) {
	resp, err := client.R().SetDoNotParseResponse(true).Get(uri)
	if err != nil {
		return "", errors.Wrapf(err, "unable to download image file from URI: %s", uri)
	}
	body := resp.RawBody()
	defer func() {
		_ = body.Close()
	}()

	if resp.IsError() {
		return "", errors.Errorf("unable to download image file from URI: %s, status %s", uri, resp.Status())
	}

	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "unable to create download directory")
	}

	ext := ""
	if u, err := url.Parse(uri); err == nil {
		ext = strings.ToLower(path.Ext(u.Path))
	}
	name := path.Join(dir, "image-"+xid.New().String()+ext)

	f, err := fs.Create(name)
	if err != nil {
		return "", errors.Wrap(err, "unable to create temporary file")
	}
	defer f.Close()

	// Copy the image binary data into the temporary file.
	if _, err := io.Copy(f, body); err != nil {
		return "", errors.Wrap(err, "unable to copy the source URI into the destination file")
	}
	return name, nil
}
